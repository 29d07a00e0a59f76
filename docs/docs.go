// Package docs holds the swagger document served at /swagger.
// Keep it in step with the @ annotations on the HTTP handlers.
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
		"/health": {
			"get": {
				"description": "Reports whether the server and its session store are up",
				"produces": [
					"application/json"
				],
				"tags": [
					"HEALTH"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/models": {
			"get": {
				"description": "Lists the models served by the completion server",
				"produces": [
					"application/json"
				],
				"tags": [
					"MODELS"
				],
				"summary": "List models",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.ModelListResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/sessions": {
			"get": {
				"description": "Lists stored session ids",
				"produces": [
					"application/json"
				],
				"tags": [
					"SESSION"
				],
				"summary": "List sessions",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.SessionListResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			},
			"post": {
				"description": "Creates a session from the configured defaults",
				"produces": [
					"application/json"
				],
				"tags": [
					"SESSION"
				],
				"summary": "Create session",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "CreateSession",
						"name": "CreateSession",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/http.CreateSessionRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.SessionResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/sessions/{id}": {
			"get": {
				"description": "Returns a session with its history and counters",
				"produces": [
					"application/json"
				],
				"tags": [
					"SESSION"
				],
				"summary": "Get session",
				"parameters": [
					{
						"type": "string",
						"description": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.SessionResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			},
			"delete": {
				"description": "Deletes a session",
				"produces": [
					"application/json"
				],
				"tags": [
					"SESSION"
				],
				"summary": "Delete session",
				"parameters": [
					{
						"type": "string",
						"description": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/sessions/{id}/reset": {
			"post": {
				"description": "Clears history and counters keeping id and settings",
				"produces": [
					"application/json"
				],
				"tags": [
					"SESSION"
				],
				"summary": "Reset session",
				"parameters": [
					{
						"type": "string",
						"description": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.SessionResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/sessions/{id}/gen": {
			"post": {
				"description": "Runs one blocking completion on a session",
				"produces": [
					"application/json"
				],
				"tags": [
					"GENERATE"
				],
				"summary": "Generate",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Generate",
						"name": "Generate",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.GenerateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.GenerateResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/sessions/{id}/stream": {
			"post": {
				"description": "Streams a completion as server-sent events ending with [DONE]",
				"produces": [
					"text/event-stream"
				],
				"tags": [
					"GENERATE"
				],
				"summary": "Stream",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Stream",
						"name": "Stream",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.GenerateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "event stream",
						"schema": {
							"type": "string"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		},
		"/v1/api/sessions/{id}/tools": {
			"post": {
				"description": "Lets the model pick a server tool, then answers with its context",
				"produces": [
					"application/json"
				],
				"tags": [
					"GENERATE"
				],
				"summary": "Generate with tools",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "uuid",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "GenerateWithTools",
						"name": "GenerateWithTools",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.ToolsRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/http.ResponseBody"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/http.ToolResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/http.ResponseBody"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.ChatMessage": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"system",
						"user",
						"assistant"
					]
				},
				"content": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"finish_reason": {
					"type": "string"
				},
				"prompt_length": {
					"type": "integer"
				},
				"completion_length": {
					"type": "integer"
				},
				"total_length": {
					"type": "integer"
				},
				"received_at": {
					"type": "string"
				}
			}
		},
		"domain.ModelInfo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"object": {
					"type": "string"
				},
				"owned_by": {
					"type": "string"
				}
			}
		},
		"domain.Usage": {
			"type": "object",
			"properties": {
				"prompt_tokens": {
					"type": "integer"
				},
				"completion_tokens": {
					"type": "integer"
				},
				"total_tokens": {
					"type": "integer"
				}
			}
		},
		"http.CreateSessionRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string",
					"maxLength": 200
				},
				"model": {
					"type": "string",
					"maxLength": 200
				},
				"system": {
					"type": "string"
				},
				"params": {
					"type": "object",
					"additionalProperties": true
				},
				"save_messages": {
					"type": "boolean"
				},
				"recent_messages": {
					"type": "integer",
					"minimum": 0
				}
			}
		},
		"http.GenerateRequest": {
			"type": "object",
			"required": [
				"prompt"
			],
			"properties": {
				"prompt": {
					"type": "string"
				},
				"system": {
					"type": "string"
				},
				"params": {
					"type": "object",
					"additionalProperties": true
				},
				"save_messages": {
					"type": "boolean"
				}
			}
		},
		"http.ToolsRequest": {
			"type": "object",
			"required": [
				"prompt"
			],
			"properties": {
				"prompt": {
					"type": "string"
				},
				"system": {
					"type": "string"
				},
				"params": {
					"type": "object",
					"additionalProperties": true
				},
				"save_messages": {
					"type": "boolean"
				},
				"tools": {
					"description": "Tools restricts routing to the named server tools; empty means all",
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"http.GenerateResponse": {
			"type": "object",
			"properties": {
				"response": {
					"type": "string"
				},
				"usage": {
					"$ref": "#/definitions/domain.Usage"
				}
			}
		},
		"http.ModelListResponse": {
			"type": "object",
			"properties": {
				"models": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.ModelInfo"
					}
				}
			}
		},
		"http.ResponseBody": {
			"type": "object",
			"properties": {
				"data": {},
				"status": {
					"$ref": "#/definitions/http.Status"
				}
			}
		},
		"http.SessionListResponse": {
			"type": "object",
			"properties": {
				"sessions": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"http.SessionResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"model": {
					"type": "string"
				},
				"system": {
					"type": "string"
				},
				"params": {
					"type": "object",
					"additionalProperties": true
				},
				"save_messages": {
					"type": "boolean"
				},
				"recent_messages": {
					"type": "integer"
				},
				"messages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.ChatMessage"
					}
				},
				"total_prompt_length": {
					"type": "integer"
				},
				"total_completion_length": {
					"type": "integer"
				},
				"total_length": {
					"type": "integer"
				},
				"created_at": {
					"type": "string"
				},
				"last_access_time": {
					"type": "string"
				}
			}
		},
		"http.Status": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"message": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"http.ToolResponse": {
			"type": "object",
			"properties": {
				"tool": {
					"type": "string"
				},
				"context": {
					"type": "string"
				},
				"response": {
					"type": "string"
				},
				"extra": {
					"type": "object",
					"additionalProperties": true
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "localaichat API",
	Description:      "Session-oriented chat against a local llama.cpp server.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
