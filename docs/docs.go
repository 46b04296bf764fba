// Package docs registers the OpenAPI description served under /api-docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/help-request": {
            "get": {
                "produces": ["application/json"],
                "tags": ["help-request"],
                "summary": "Help-request endpoint health",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["help-request"],
                "summary": "Submit a help request",
                "parameters": [
                    {"type": "string", "name": "help_type", "in": "formData", "required": true},
                    {"type": "string", "name": "urgency_level", "in": "formData", "required": true},
                    {"type": "string", "name": "situation", "in": "formData", "required": true},
                    {"type": "string", "name": "location", "in": "formData"},
                    {"type": "string", "name": "contact_method", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/api/help-request/suggestion": {
            "post": {
                "produces": ["application/json"],
                "tags": ["help-request"],
                "summary": "Suggest next steps for a situation",
                "parameters": [{"type": "string", "name": "description", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List public events",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "category_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/api/v1/events/{id}/registrations": {
            "post": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Register to an event",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "full_name", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "phone", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/api/v1/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List published articles",
                "parameters": [{"type": "boolean", "name": "testimony", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/api/v1/admin/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Dashboard counters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}}
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Build information",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/config.Version"}}}
            }
        }
    },
    "definitions": {
        "utils.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "id": {"type": "integer"},
                "status": {"type": "string"},
                "data": {}
            }
        },
        "config.Version": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "api_version": {"type": "string"},
                "app_name": {"type": "string"},
                "build_date": {"type": "string"},
                "git_commit": {"type": "string"},
                "go_version": {"type": "string"},
                "platform": {"type": "string"},
                "build_env": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "PeaceConnect API",
	Description:      "Events, articles and help requests of the PeaceConnect platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
