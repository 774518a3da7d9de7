// Package api holds the OpenAPI document served at /swagger/. Keep this file
// in sync with the handler annotations in internal/catalog/http.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["System"],
                "summary": "Service banner",
                "responses": {
                    "200": {"description": "The server is running.", "schema": {"type": "string"}}
                }
            }
        },
        "/auth/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "Welcome confirmation", "schema": {"type": "string"}},
                    "401": {"description": "Username or email already taken", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Missing or malformed fields", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/token": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login for an access token",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/Token"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Missing form fields", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "Account profile", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Invalid or missing token", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Account disabled", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/authors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Authors"],
                "summary": "List authors",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Author"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authors"],
                "summary": "Create author",
                "parameters": [
                    {"description": "Author details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Author"}},
                    "409": {"description": "Author already exists", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Missing or malformed fields", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/authors/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Authors"],
                "summary": "Get author",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Author"}},
                    "404": {"description": "Author does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authors"],
                "summary": "Update author",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Author"}},
                    "404": {"description": "Author does not exist", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Name already taken", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Authors"],
                "summary": "Delete author",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Deleted author", "schema": {"$ref": "#/definitions/Author"}},
                    "404": {"description": "Author does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/book": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Books"],
                "summary": "List books",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Book"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Books"],
                "summary": "Create book",
                "parameters": [
                    {"description": "Book details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Book"}},
                    "404": {"description": "Referenced author or recommender does not exist", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Missing or malformed fields", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/book/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Books"],
                "summary": "Get book",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Book"}},
                    "404": {"description": "Book does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Books"],
                "summary": "Update book",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Book"}},
                    "404": {"description": "Book, author or recommender does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Books"],
                "summary": "Delete book",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Deleted book", "schema": {"$ref": "#/definitions/Book"}},
                    "404": {"description": "Book does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/recommenders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Recommenders"],
                "summary": "List recommenders",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Recommender"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommenders"],
                "summary": "Create recommender",
                "parameters": [
                    {"description": "Recommender details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Recommender"}},
                    "409": {"description": "Recommender already exists", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Missing or malformed fields", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/v1/recommenders/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Recommenders"],
                "summary": "Get recommender",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Recommender"}},
                    "404": {"description": "Recommender does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommenders"],
                "summary": "Update recommender",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Recommender"}},
                    "404": {"description": "Recommender does not exist", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Name already taken", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Recommenders"],
                "summary": "Delete recommender",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Deleted recommender", "schema": {"$ref": "#/definitions/Recommender"}},
                    "404": {"description": "Recommender does not exist", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/Health"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/Health"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/Health"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "detail": {"type": "string"}
            }
        },
        "Token": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "NameRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "Author": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "Recommender": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "BookRequest": {
            "type": "object",
            "properties": {
                "author_id": {"type": "integer"},
                "recommender_id": {"type": "integer"},
                "title": {"type": "string"},
                "year_published": {"type": "integer"},
                "is_purchased": {"type": "boolean"},
                "is_read": {"type": "boolean"}
            }
        },
        "Book": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "author_id": {"type": "integer"},
                "recommender_id": {"type": "integer"},
                "title": {"type": "string"},
                "year_published": {"type": "integer"},
                "is_purchased": {"type": "boolean"},
                "is_read": {"type": "boolean"}
            }
        },
        "Health": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT access token. Format: \"Bearer {token}\"."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "BuklatAPI",
	Description:      "Bibliographic catalog service: account registration and login with JWT bearer tokens, plus CRUD for authors, books and recommenders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
