// Package swagger registers the generated OpenAPI spec with swag so the
// /swagger route can serve it.
package swagger

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
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Basic ping endpoint",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Logs a user in",
                "parameters": [
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/signup": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Registers a new user",
                "parameters": [
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/createGame": {
            "post": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Creates a new game",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/joinGame/{game_id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Inserts a user into a game",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "name": "game_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/auth/gameInfo/{game_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Gives info of a game",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "name": "game_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/auth/getAllGames": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Lists all joinable games",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Farol API",
	Description:      "Gin-Gonic server for the \"Farol\" game API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
