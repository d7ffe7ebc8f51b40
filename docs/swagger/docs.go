// Package swagger holds the OpenAPI document served under /swagger.
// Keep it in sync with the handler annotations.
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
		"/auth/register": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Register",
				"parameters": [
					{
						"description": "New account",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CredentialsRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Login",
				"parameters": [
					{
						"description": "Credentials",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/TokenResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/sweets": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "List sweets",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/SweetResponse"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Adds a sweet with an initial stock. Requires a privileged account.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Add sweet",
				"parameters": [
					{
						"description": "Sweet to add",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/SweetRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/SweetResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/sweets/search": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Search sweets",
				"parameters": [
					{
						"type": "string",
						"description": "Name substring",
						"name": "name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Exact category",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/SweetResponse"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/sweets/{id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Get sweet",
				"parameters": [
					{
						"type": "string",
						"description": "Sweet ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SweetResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			},
			"put": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Update sweet",
				"parameters": [
					{
						"type": "string",
						"description": "Sweet ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "New details",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/SweetUpdateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SweetResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"sweets"
				],
				"summary": "Delete sweet",
				"parameters": [
					{
						"type": "string",
						"description": "Sweet ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/sweets/{id}/purchase": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Purchase sweet",
				"parameters": [
					{
						"type": "string",
						"description": "Sweet ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Units to buy",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/PurchaseRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SweetResponse"
						}
					},
					"400": {
						"description": "sold out",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/sweets/{id}/restock": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Restock sweet",
				"parameters": [
					{
						"type": "string",
						"description": "Sweet ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Units to add",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/RestockRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SweetResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		},
		"/sweets/{id}/sales": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"sweets"
				],
				"summary": "Sales of a sweet",
				"parameters": [
					{
						"type": "string",
						"description": "Sweet ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/SalesResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorBody"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"CredentialsRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string",
					"example": "correct-horse",
					"maxLength": 72,
					"minLength": 8
				},
				"username": {
					"type": "string",
					"example": "alice",
					"maxLength": 50,
					"minLength": 3
				}
			},
			"required": [
				"password",
				"username"
			]
		},
		"LoginRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string",
					"example": "correct-horse",
					"maxLength": 72
				},
				"username": {
					"type": "string",
					"example": "alice",
					"maxLength": 50
				}
			},
			"required": [
				"password",
				"username"
			]
		},
		"MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "User created successfully"
				}
			}
		},
		"TokenResponse": {
			"type": "object",
			"properties": {
				"access_token": {
					"type": "string",
					"example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
				},
				"expires_at": {
					"type": "string",
					"example": "2024-01-15T11:00:00Z"
				},
				"token_type": {
					"type": "string",
					"example": "bearer"
				}
			}
		},
		"ErrorBody": {
			"type": "object",
			"properties": {
				"detail": {
					"type": "string",
					"example": "sweet not found"
				},
				"fields": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"SweetRequest": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"example": "Barfi",
					"maxLength": 100
				},
				"name": {
					"type": "string",
					"example": "Kaju Katli",
					"maxLength": 255
				},
				"price": {
					"type": "number",
					"example": 4.5,
					"minimum": 0
				},
				"quantity": {
					"type": "integer",
					"example": 20,
					"minimum": 0
				}
			},
			"required": [
				"category",
				"name",
				"price",
				"quantity"
			]
		},
		"SweetUpdateRequest": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"example": "Barfi",
					"maxLength": 100
				},
				"name": {
					"type": "string",
					"example": "Kaju Katli",
					"maxLength": 255
				},
				"price": {
					"type": "number",
					"example": 4.5,
					"minimum": 0
				}
			},
			"required": [
				"category",
				"name",
				"price"
			]
		},
		"PurchaseRequest": {
			"type": "object",
			"properties": {
				"quantity": {
					"type": "integer",
					"example": 1,
					"minimum": 1
				}
			}
		},
		"RestockRequest": {
			"type": "object",
			"properties": {
				"quantity": {
					"type": "integer",
					"example": 10,
					"minimum": 1
				}
			},
			"required": [
				"quantity"
			]
		},
		"SweetResponse": {
			"type": "object",
			"properties": {
				"category": {
					"type": "string",
					"example": "Barfi"
				},
				"created_at": {
					"type": "string",
					"example": "2024-01-15T10:30:00Z"
				},
				"id": {
					"type": "string",
					"example": "123e4567-e89b-12d3-a456-426614174000"
				},
				"name": {
					"type": "string",
					"example": "Kaju Katli"
				},
				"price": {
					"type": "number",
					"example": 4.5
				},
				"quantity": {
					"type": "integer",
					"example": 20
				},
				"updated_at": {
					"type": "string",
					"example": "2024-01-15T10:30:00Z"
				}
			}
		},
		"SalesResponse": {
			"type": "object",
			"properties": {
				"sweet_id": {
					"type": "string",
					"example": "123e4567-e89b-12d3-a456-426614174000"
				},
				"units_sold": {
					"type": "integer",
					"example": 42
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the access token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo is registered with swag under the default instance name.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Sweet Shop API",
	Description:      "Inventory and sales service for a sweet shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
