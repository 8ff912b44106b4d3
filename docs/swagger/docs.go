// Package swagger registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

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
        "/growing-units": {
            "get": {
                "produces": ["application/json"],
                "tags": ["growing-units"],
                "summary": "List growing units",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["growing-units"],
                "summary": "Create a growing unit",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/IDResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/growing-units/transplants": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["growing-units"],
                "summary": "Transplant a plant between growing units",
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/growing-units/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["growing-units"],
                "summary": "Get a growing unit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "tags": ["growing-units"],
                "summary": "Update a growing unit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            },
            "delete": {
                "tags": ["growing-units"],
                "summary": "Delete a growing unit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/growing-units/{id}/plants": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["plants"],
                "summary": "Add a plant to a growing unit",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/IDResponse"}}}
            }
        },
        "/growing-units/{id}/plants/{plantId}": {
            "patch": {
                "tags": ["plants"],
                "summary": "Update a plant in a growing unit",
                "responses": {"204": {"description": "No Content"}}
            },
            "delete": {
                "tags": ["plants"],
                "summary": "Remove a plant from a growing unit",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/overview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["overview"],
                "summary": "Get the garden overview",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/locations": {
            "get": {"tags": ["locations"], "summary": "List locations", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["locations"], "summary": "Create a location", "responses": {"201": {"description": "Created"}}}
        },
        "/locations/{id}": {
            "get": {"tags": ["locations"], "summary": "Get a location", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["locations"], "summary": "Update a location", "responses": {"204": {"description": "No Content"}}},
            "delete": {
                "tags": ["locations"],
                "summary": "Delete a location",
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/plants": {
            "get": {"tags": ["container-plants"], "summary": "List plants", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["container-plants"], "summary": "Create a plant", "responses": {"201": {"description": "Created"}}}
        },
        "/plants/{id}": {
            "get": {"tags": ["container-plants"], "summary": "Get a plant", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["container-plants"], "summary": "Update a plant", "responses": {"204": {"description": "No Content"}}},
            "delete": {"tags": ["container-plants"], "summary": "Delete a plant", "responses": {"204": {"description": "No Content"}}}
        },
        "/plants/{id}/status": {
            "put": {"tags": ["container-plants"], "summary": "Change a plant's status", "responses": {"204": {"description": "No Content"}}}
        },
        "/plant-species": {
            "get": {"tags": ["plant-species"], "summary": "List plant species", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["plant-species"],
                "summary": "Create a plant species",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/plant-species/{id}": {
            "get": {"tags": ["plant-species"], "summary": "Get a plant species", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["plant-species"], "summary": "Update a plant species", "responses": {"204": {"description": "No Content"}}},
            "delete": {"tags": ["plant-species"], "summary": "Delete a plant species", "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "IDResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "GardenHub API",
	Description:      "Gardening management API: locations, growing units, plants and plant species.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
