// Package docs registers the OpenAPI document served under /swagger.
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
        "/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "List alerts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.alertListResponse"}}
                }
            }
        },
        "/alerts/read-all": {
            "post": {
                "tags": ["alerts"],
                "summary": "Mark every alert as read",
                "responses": {"202": {"description": "Accepted"}}
            }
        },
        "/api/v1/auth/check-id": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Check login id availability",
                "parameters": [
                    {"type": "string", "description": "Login id", "name": "loginId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.checkIDResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/auth/social-profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Pending social profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SocialProfile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Store pending social profile",
                "parameters": [
                    {"description": "Social profile", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SocialProfile"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/customers/confirm": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Confirm customer",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/reservations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "List reservations visible to the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reservationListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Book a service",
                "parameters": [
                    {"description": "Booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Reservation"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/reservations/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Reset reservations to seed data",
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/reservation/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Get a reservation",
                "parameters": [
                    {"type": "string", "description": "Reservation id (e.g. CL-1718000000000-101)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Reservation"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Update a reservation",
                "parameters": [
                    {"type": "string", "description": "Reservation id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to replace", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.patchReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Reservation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.Alert": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "message": {"type": "string"},
                "link": {"type": "string"},
                "unread": {"type": "boolean"},
                "created_at": {"type": "string"},
                "elapsed": {"type": "string"}
            }
        },
        "domain.Reservation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customer_id": {"type": "integer"},
                "manager_id": {"type": "integer"},
                "service_name": {"type": "string"},
                "category": {"type": "string"},
                "address": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "in_progress", "completed", "cancelled"]},
                "price": {"type": "integer"},
                "memo": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "isLoggedIn": {"type": "boolean"},
                "user": {"$ref": "#/definitions/domain.User"},
                "token": {"type": "string"}
            }
        },
        "domain.SocialProfile": {
            "type": "object",
            "required": ["provider", "provider_id"],
            "properties": {
                "provider": {"type": "string", "enum": ["kakao", "naver", "google"]},
                "provider_id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["CUSTOMER", "MANAGER", "ADMIN"]}
            }
        },
        "handler.alertListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Alert"}},
                "unread": {"type": "integer"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "session": {"$ref": "#/definitions/domain.Session"}
            }
        },
        "handler.checkIDResponse": {
            "type": "object",
            "properties": {"available": {"type": "boolean"}}
        },
        "handler.createReservationRequest": {
            "type": "object",
            "required": ["address", "scheduled_at", "service_name"],
            "properties": {
                "service_name": {"type": "string", "maxLength": 100},
                "category": {"type": "string", "maxLength": 50},
                "address": {"type": "string", "maxLength": 200},
                "scheduled_at": {"type": "string"},
                "price": {"type": "integer", "minimum": 0},
                "memo": {"type": "string", "maxLength": 500}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["loginId", "password"],
            "properties": {
                "loginId": {"type": "string", "maxLength": 64},
                "password": {"type": "string"}
            }
        },
        "handler.patchReservationRequest": {
            "type": "object",
            "properties": {
                "manager_id": {"type": "integer", "minimum": 1},
                "service_name": {"type": "string"},
                "category": {"type": "string"},
                "address": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "in_progress", "completed", "cancelled"]},
                "price": {"type": "integer", "minimum": 0},
                "memo": {"type": "string"}
            }
        },
        "handler.reservationListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Reservation"}},
                "count": {"type": "integer"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/domain.Session"},
                "valid": {"type": "boolean"},
                "reason": {"type": "string"},
                "tampered": {"type": "boolean"}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Home-services marketplace gateway",
	Description:      "Session gateway for the home-services marketplace: visitor sessions, route guards and the mock reservation backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
