// Package docs holds the swagger document for the program web API, in the
// layout swag init writes.
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
        "/api/v1/program/detail": {
            "get": {
                "produces": ["application/json"],
                "tags": ["program"],
                "summary": "Program detail regions",
                "parameters": [
                    {"type": "string", "description": "program id", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Resp"}}
                }
            }
        },
        "/api/v1/program/timeline": {
            "get": {
                "produces": ["application/json"],
                "tags": ["program"],
                "summary": "Program timeline at an elapsed time",
                "parameters": [
                    {"type": "string", "description": "program id", "name": "id", "in": "query", "required": true},
                    {"type": "number", "description": "seconds since start", "name": "elapsed", "in": "query"},
                    {"type": "integer", "description": "upcoming settings to list", "name": "next", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.Resp"}}
                }
            }
        },
        "/api/v1/program/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["program"],
                "summary": "Delete a program",
                "parameters": [
                    {"type": "string", "description": "program id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "owner to return to", "name": "scientist", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Resp"}}
                }
            }
        },
        "/program/detail": {
            "get": {
                "produces": ["text/html"],
                "tags": ["page"],
                "summary": "Program detail page",
                "parameters": [
                    {"type": "string", "description": "program id", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/program/detail/delete": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["page"],
                "summary": "Delete control of the detail page",
                "parameters": [
                    {"type": "string", "name": "id", "in": "formData", "required": true},
                    {"type": "string", "name": "scientist", "in": "formData"},
                    {"type": "boolean", "name": "confirmed", "in": "formData"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "302": {"description": "Found"}
                }
            }
        }
    },
    "definitions": {
        "common.Error": {
            "type": "object",
            "properties": {
                "info": {"type": "array", "items": {"type": "string"}},
                "msg": {"type": "string"}
            }
        },
        "common.Resp": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "error": {"$ref": "#/definitions/common.Error"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "piwarmer",
	Description:      "Program detail pages and API for heater programs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
