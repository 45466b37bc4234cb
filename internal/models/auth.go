package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims represents the access token payload issued by the identity
// provider. Students carry their student number and grade.
type JWTClaims struct {
	UserID        string   `json:"user_id"`
	Role          UserRole `json:"role"`
	Email         string   `json:"email"`
	FullName      string   `json:"full_name"`
	StudentNumber *int64   `json:"student_number,omitempty"`
	Grade         *int     `json:"grade,omitempty"`
	jwt.RegisteredClaims
}

// TeacherID is the identifier recorded on assessments a teacher owns.
func (c *JWTClaims) TeacherID() string {
	if c == nil {
		return ""
	}
	if c.Email != "" {
		return c.Email
	}
	return c.UserID
}

// IsStaff reports whether the caller may act on any student's data.
func (c *JWTClaims) IsStaff() bool {
	return c != nil && (c.Role == RoleAdmin || c.Role == RoleTeacher)
}

// CanViewStudent reports whether the caller may read the given student's
// results.
func (c *JWTClaims) CanViewStudent(studentNumber int64) bool {
	if c == nil {
		return false
	}
	if c.IsStaff() {
		return true
	}
	return c.Role == RoleStudent && c.StudentNumber != nil && *c.StudentNumber == studentNumber
}
