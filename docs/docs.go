// Package docs holds the OpenAPI description served at /swagger. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{escape .Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user"}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in a user"}},
        "/interest": {"post": {"tags": ["interest"], "summary": "Express interest in a profile", "security": [{"BearerAuth": []}]}},
        "/interest/sent": {"get": {"tags": ["interest"], "summary": "List sent interests", "security": [{"BearerAuth": []}]}},
        "/interest/received": {"get": {"tags": ["interest"], "summary": "List received interests", "security": [{"BearerAuth": []}]}},
        "/interest/{id}/accept": {"post": {"tags": ["interest"], "summary": "Accept an interest", "security": [{"BearerAuth": []}]}},
        "/interest/{id}/decline": {"post": {"tags": ["interest"], "summary": "Decline an interest", "security": [{"BearerAuth": []}]}},
        "/chat/conversations": {"get": {"tags": ["chat"], "summary": "List conversations", "security": [{"BearerAuth": []}]}},
        "/chat/conversations/{userId}/messages": {
            "get": {"tags": ["chat"], "summary": "Get conversation history", "security": [{"BearerAuth": []}]},
            "post": {"tags": ["chat"], "summary": "Send a message", "security": [{"BearerAuth": []}]}
        },
        "/chat/message-limit": {"get": {"tags": ["chat"], "summary": "Get message quota status", "security": [{"BearerAuth": []}]}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Myswamvar API",
	Description:      "Matrimonial matching platform: interests, mutual-interest-gated chat, quotas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
