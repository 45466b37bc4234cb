package models

// ChatRole identifies the speaker of a chat turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one prior turn of an assistant conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role" validate:"required,oneof=user model"`
	Content string   `json:"content" validate:"required"`
}
