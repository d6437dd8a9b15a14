package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Report Card API",
        "description": "School report-card portal: teacher result entry and student report access",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and session identity"},
        {"name": "Results", "description": "Score sheet upload and result entry"},
        {"name": "Profiles", "description": "Student bio-data management"},
        {"name": "Accounts", "description": "Student login accounts"},
        {"name": "Reports", "description": "Report cards and broadsheet export"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login as teacher or student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Logout (stateless; client discards the token)",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Current user identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/upload": {
            "post": {
                "tags": ["Results"],
                "security": [{"BearerAuth": []}],
                "summary": "Parse and grade an .xlsx score sheet (preview only)",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Graded preview", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing required columns"},
                    "422": {"description": "File could not be processed"}
                }
            }
        },
        "/results": {
            "get": {
                "tags": ["Results"],
                "security": [{"BearerAuth": []}],
                "summary": "List all result entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Results"],
                "security": [{"BearerAuth": []}],
                "summary": "Save graded results for a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveResultsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profiles": {
            "get": {
                "tags": ["Profiles"],
                "security": [{"BearerAuth": []}],
                "summary": "List student profiles",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Profiles"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a student profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Profile already exists"}
                }
            }
        },
        "/profiles/{name}": {
            "get": {
                "tags": ["Profiles"],
                "security": [{"BearerAuth": []}],
                "summary": "Get one profile",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Profiles"],
                "security": [{"BearerAuth": []}],
                "summary": "Update a profile",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Profiles"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete a profile (two-step confirmation)",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "type": "boolean", "description": "Repeat with confirm=true after the 409 response"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Confirmation required"}
                }
            }
        },
        "/accounts": {
            "get": {
                "tags": ["Accounts"],
                "security": [{"BearerAuth": []}],
                "summary": "List student accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Accounts"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/accounts/{username}": {
            "delete": {
                "tags": ["Accounts"],
                "security": [{"BearerAuth": []}],
                "summary": "Remove an account and cascade to profile and results (two-step confirmation)",
                "parameters": [
                    {"name": "username", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Removal summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Teacher account cannot be removed"},
                    "409": {"description": "Confirmation required"}
                }
            }
        },
        "/export/results.csv": {
            "get": {
                "tags": ["Reports"],
                "security": [{"BearerAuth": []}],
                "summary": "Download the class broadsheet as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV download"}
                }
            }
        },
        "/me/report": {
            "get": {
                "tags": ["Reports"],
                "security": [{"BearerAuth": []}],
                "summary": "The authenticated student's report card",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No results recorded"}
                }
            }
        },
        "/me/report/pdf": {
            "get": {
                "tags": ["Reports"],
                "security": [{"BearerAuth": []}],
                "summary": "The authenticated student's report card as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF download"},
                    "404": {"description": "No results recorded"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "ScoreRow": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "ca1": {"type": "string"},
                "ca2": {"type": "string"},
                "exam": {"type": "string"}
            },
            "required": ["subject"]
        },
        "SaveResultsRequest": {
            "type": "object",
            "properties": {
                "student_name": {"type": "string"},
                "rows": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScoreRow"}
                }
            },
            "required": ["student_name", "rows"]
        },
        "ProfileRequest": {
            "type": "object",
            "properties": {
                "student_name": {"type": "string"},
                "age": {"type": "integer"},
                "reg_number": {"type": "string"},
                "parent_name": {"type": "string"},
                "parent_phone": {"type": "string"},
                "parent_address": {"type": "string"},
                "session": {"type": "string"},
                "term": {"type": "string"}
            },
            "required": ["student_name"]
        },
        "AccountRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
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
