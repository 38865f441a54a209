// Package docs registers the OpenAPI description served at /swagger.
// Paths mirror the @Router annotations in internal/handler; keep them in sync
// when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/admin/rooms/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin-rooms"],
                "summary": "Inspect a room",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RoomResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Room not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/words": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin-words"],
                "summary": "List word pairs",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Items per page", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PaginatedResponse-models_WordPair"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-words"],
                "summary": "Add a word pair",
                "parameters": [
                    {"description": "Word pair", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.WordPairInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.WordPair"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Pair already exists", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["admin-words"],
                "summary": "Remove a word pair",
                "parameters": [
                    {"description": "Word pair", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.WordPairInput"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Pair not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in as admin",
                "parameters": [
                    {"description": "Login Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Admin login disabled", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/commands": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Runs one text command as the given player and returns the reply, with status and word appended.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-commands"],
                "summary": "Send a command",
                "parameters": [
                    {"description": "Command", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommandInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommandResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "{\"message\": \"pong\"}", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/wechat": {
            "get": {
                "description": "Echoes echostr back when the signature matches the configured token.",
                "produces": ["text/plain"],
                "tags": ["wechat"],
                "summary": "Webhook URL verification",
                "parameters": [
                    {"type": "string", "description": "Signature", "name": "signature", "in": "query", "required": true},
                    {"type": "string", "description": "Timestamp", "name": "timestamp", "in": "query", "required": true},
                    {"type": "string", "description": "Nonce", "name": "nonce", "in": "query", "required": true},
                    {"type": "string", "description": "Echo string", "name": "echostr", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Routes a text message through the game and answers with a passive text reply.",
                "consumes": ["application/xml"],
                "produces": ["application/xml"],
                "tags": ["wechat"],
                "summary": "Receive a platform message",
                "parameters": [
                    {"type": "string", "description": "Signature", "name": "signature", "in": "query", "required": true},
                    {"type": "string", "description": "Timestamp", "name": "timestamp", "in": "query", "required": true},
                    {"type": "string", "description": "Nonce", "name": "nonce", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wechat.TextReply"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CommandInput": {
            "type": "object",
            "required": ["user_id"],
            "properties": {
                "text": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "handler.CommandResponse": {
            "type": "object",
            "properties": {
                "reply": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string", "example": "2024-01-01T00:00:00Z"}
            }
        },
        "handler.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.PaginatedResponse-models_WordPair": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.WordPair"}},
                "meta": {"$ref": "#/definitions/handler.PaginationMeta"}
            }
        },
        "handler.PaginationMeta": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "handler.RoomResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "creator": {"type": "string"},
                "current_round": {"type": "integer", "example": 1},
                "eliminated": {"type": "array", "items": {"type": "string"}},
                "last_active": {"type": "string"},
                "players": {"type": "array", "items": {"type": "string"}},
                "room_id": {"type": "string", "example": "1234"},
                "status": {"type": "string", "example": "playing"},
                "undercovers": {"type": "array", "items": {"type": "string"}},
                "words": {"$ref": "#/definitions/models.WordPair"}
            }
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "handler.WordPairInput": {
            "type": "object",
            "required": ["civilian", "undercover"],
            "properties": {
                "civilian": {"type": "string"},
                "undercover": {"type": "string"}
            }
        },
        "wechat.CDATA": {
            "type": "object",
            "properties": {
                "value": {"type": "string"}
            }
        },
        "wechat.TextReply": {
            "type": "object",
            "properties": {
                "Content": {"$ref": "#/definitions/wechat.CDATA"},
                "CreateTime": {"type": "integer"},
                "FromUserName": {"$ref": "#/definitions/wechat.CDATA"},
                "MsgType": {"$ref": "#/definitions/wechat.CDATA"},
                "ToUserName": {"$ref": "#/definitions/wechat.CDATA"}
            }
        },
        "models.WordPair": {
            "type": "object",
            "properties": {
                "civilian": {"type": "string"},
                "undercover": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Undercover API",
	Description:      "Webhook and admin API for the \"who is the undercover\" party game.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
