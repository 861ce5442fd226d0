// Package docs registers the OpenAPI document served at /docs/doc.json.
// Regenerate the path catalogue from handler annotations with:
//
//	swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Courtside"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "tags": [
        {"name": "basketball", "description": "Players, teams, rosters, games and box scores"},
        {"name": "analytics", "description": "Read-only composite queries"},
        {"name": "strategy", "description": "Game plans and draft evaluations"},
        {"name": "system", "description": "Operational metadata: loads, error logs, data errors, cleanup, validation"},
        {"name": "auth", "description": "Demo user lookup and team assignment"},
        {"name": "meta", "description": "Root info and liveness"}
    ],
    "paths": {},
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "respond.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Courtside Basketball Analytics API",
	Description:      "Players, teams, games, analytics, strategy and operational metadata for the Courtside dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
