// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/servicedesk/main.go
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate with email and password",
                "responses": {"200": {"description": "token pair"}, "401": {"description": "invalid credentials"}, "429": {"description": "rate limited"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an end user in a tenant",
                "responses": {"201": {"description": "created"}, "409": {"description": "email taken"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "responses": {"200": {"description": "token pair"}, "401": {"description": "invalid token"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user with roles and tenant",
                "responses": {"200": {"description": "current user"}}
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "paginated users"}}
            }
        },
        "/tickets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tickets"],
                "summary": "List tickets visible to the caller",
                "responses": {"200": {"description": "paginated tickets"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tickets"],
                "summary": "Create a ticket",
                "responses": {"201": {"description": "created"}, "400": {"description": "validation error"}}
            }
        },
        "/tickets/{id}/status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tickets"],
                "summary": "Move a ticket through its lifecycle",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "updated ticket"}, "400": {"description": "invalid transition"}}
            }
        },
        "/sla-policies": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["sla"],
                "summary": "Create an SLA policy",
                "responses": {"201": {"description": "created"}}
            }
        },
        "/custom-fields": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalogue"],
                "summary": "List custom field definitions",
                "responses": {"200": {"description": "fields"}}
            }
        },
        "/assets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["assets"],
                "summary": "List configuration items",
                "responses": {"200": {"description": "paginated assets"}}
            }
        },
        "/kb/articles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["knowledge"],
                "summary": "List or search knowledge base articles",
                "responses": {"200": {"description": "paginated articles"}}
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "List the caller's notifications, newest first",
                "responses": {"200": {"description": "paginated notifications"}}
            }
        },
        "/notifications/preferences": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Upsert delivery preferences per event type",
                "responses": {"200": {"description": "preferences"}}
            }
        },
        "/analytics/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Ticket volume and backlog overview",
                "responses": {"200": {"description": "overview"}}
            }
        },
        "/analytics/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["analytics"],
                "summary": "Download a report as CSV",
                "responses": {"200": {"description": "csv attachment"}}
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
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Servicedesk API",
	Description:      "Multi-tenant IT service management: tickets, SLAs, assets, knowledge base and notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
