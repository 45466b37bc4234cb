package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IVA School Portal API",
        "description": "Assessment, grading cycle and study assistant endpoints for the student and teacher portals.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Student", "description": "Student portal reads"},
        {"name": "Teacher", "description": "Assessment management and mark entry"},
        {"name": "Assistant", "description": "Study assistant chat"},
        {"name": "Admin", "description": "Catalog maintenance"}
    ],
    "paths": {
        "/student/assessments": {
            "get": {
                "tags": ["Student"],
                "summary": "Student assessments for a grading cycle",
                "parameters": [
                    {"name": "studentNumber", "in": "query", "type": "integer"},
                    {"name": "grade", "in": "query", "type": "integer"},
                    {"name": "cycle", "in": "query", "type": "integer"},
                    {"name": "alias", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Assessments grouped by enrolled subject", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Another student's results", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/assessments/export": {
            "get": {
                "tags": ["Student"],
                "summary": "Export student results",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "studentNumber", "in": "query", "type": "integer"},
                    {"name": "grade", "in": "query", "type": "integer"},
                    {"name": "cycle", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {"200": {"description": "Results file", "schema": {"type": "file"}}}
            }
        },
        "/student/attendance": {
            "get": {
                "tags": ["Student"],
                "summary": "Student attendance",
                "parameters": [{"name": "studentNumber", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "Records with totals", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/timetable": {
            "get": {
                "tags": ["Student"],
                "summary": "Student timetable",
                "description": "Per-weekday periods for grades with detailed timetables, otherwise the grade's subject list.",
                "parameters": [
                    {"name": "studentNumber", "in": "query", "type": "integer"},
                    {"name": "grade", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Timetable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Another student's timetable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No timetable for the student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/subjects": {
            "get": {
                "tags": ["Teacher"],
                "summary": "Subjects taught by the caller",
                "responses": {"200": {"description": "Subjects", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher/assessments": {
            "get": {
                "tags": ["Teacher"],
                "summary": "List the caller's assessments",
                "parameters": [
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "cycle", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "Assessments", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Teacher"],
                "summary": "Create an assessment on a subject the caller teaches",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssessmentRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/assessments/{id}": {
            "put": {
                "tags": ["Teacher"],
                "summary": "Update an assessment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssessmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Owned by another teacher", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Teacher"],
                "summary": "Delete an assessment and its marks",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Owned by another teacher", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/assessments/{id}/marks": {
            "get": {
                "tags": ["Teacher"],
                "summary": "Marking sheet for an assessment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Roster", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher/assessments/{id}/publish": {
            "put": {
                "tags": ["Teacher"],
                "summary": "Publish or unpublish every mark of an assessment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PublishRequest"}}
                ],
                "responses": {"200": {"description": "Publication result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher/marks": {
            "post": {
                "tags": ["Teacher"],
                "summary": "Record a student's mark",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkRequest"}}],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assistant/chat": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Ask the study assistant",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}],
                "responses": {
                    "200": {"description": "Reply", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Model unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Assistant not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/catalog/{grade}/refresh": {
            "post": {
                "tags": ["Admin"],
                "summary": "Drop the cached cycles and subjects of a grade",
                "parameters": [{"name": "grade", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "Refreshed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "AssessmentRequest": {
            "type": "object",
            "required": ["subject_id", "title", "due_date", "cycle"],
            "properties": {
                "subject_id": {"type": "string"},
                "title": {"type": "string"},
                "due_date": {"type": "string", "format": "date"},
                "max_marks": {"type": "number"},
                "weighting": {"type": "number", "description": "Fraction of the cycle total, 0 < w <= 1"},
                "is_test": {"type": "boolean"},
                "cycle": {"type": "integer"}
            }
        },
        "MarkRequest": {
            "type": "object",
            "required": ["assessment_id", "student_number"],
            "properties": {
                "assessment_id": {"type": "string"},
                "student_number": {"type": "integer"},
                "mark_obtained": {"type": "number"},
                "teacher_comments": {"type": "string"},
                "is_published": {"type": "boolean"}
            }
        },
        "PublishRequest": {
            "type": "object",
            "required": ["is_published"],
            "properties": {"is_published": {"type": "boolean"}}
        },
        "ChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string"},
                "history": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "role": {"type": "string", "enum": ["user", "model"]},
                            "content": {"type": "string"}
                        }
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
