// Package docs registra a documentação OpenAPI servida em /swagger.
// Gerado no formato do swag a partir das anotações dos handlers.
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
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Autentica e devolve o token de acesso",
                "parameters": [
                    {"description": "Credenciais", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Lista usuários",
                "parameters": [
                    {"type": "string", "description": "Busca por nome ou email", "name": "search", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Itens por página", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Página", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inertia.Page"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "tags": ["users"],
                "summary": "Cria um usuário com senha provisória e um role",
                "parameters": [
                    {"description": "Usuário", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UserRequest"}}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Detalha um usuário",
                "parameters": [
                    {"type": "integer", "description": "ID do usuário", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inertia.Page"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["users"],
                "summary": "Atualiza um usuário",
                "parameters": [
                    {"type": "integer", "description": "ID do usuário", "name": "id", "in": "path", "required": true},
                    {"description": "Usuário", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UserRequest"}}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Remove um usuário",
                "parameters": [
                    {"type": "integer", "description": "ID do usuário", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/roles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Lista roles",
                "parameters": [
                    {"type": "string", "description": "Busca por nome", "name": "search", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Itens por página", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Página", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inertia.Page"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "tags": ["roles"],
                "summary": "Cria um role com permissões",
                "parameters": [
                    {"description": "Role", "name": "role", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RoleRequest"}}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/roles/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Detalha um role",
                "parameters": [
                    {"type": "integer", "description": "ID do role", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inertia.Page"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["roles"],
                "summary": "Atualiza um role",
                "parameters": [
                    {"type": "integer", "description": "ID do role", "name": "id", "in": "path", "required": true},
                    {"description": "Role", "name": "role", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RoleRequest"}}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["roles"],
                "summary": "Remove um role",
                "parameters": [
                    {"type": "integer", "description": "ID do role", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationError"}}
            }
        },
        "dto.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "tag": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "maxLength": 72}
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "dto.UserRequest": {
            "type": "object",
            "required": ["email", "is_active", "name", "user_role"],
            "properties": {
                "name": {"type": "string", "maxLength": 255, "minLength": 2},
                "email": {"type": "string", "maxLength": 255},
                "phone": {"type": "string", "maxLength": 50},
                "address": {"type": "string", "maxLength": 500},
                "city": {"type": "string", "maxLength": 255},
                "state": {"type": "string", "maxLength": 255},
                "country": {"type": "string", "maxLength": 255},
                "postal_code": {"type": "string", "maxLength": 50},
                "is_active": {"type": "boolean"},
                "user_role": {"type": "string"},
                "password_reset": {"type": "boolean"}
            }
        },
        "dto.RoleRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "selectedPermissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "inertia.Page": {
            "type": "object",
            "properties": {
                "component": {"type": "string"},
                "props": {"type": "object", "additionalProperties": true},
                "url": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo contém as informações exportadas da especificação
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AvantPro Admin API",
	Description:      "Administração de usuários e roles com controle de acesso por permissões.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
