package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sports Academy API",
        "description": "Class enrollment platform: offerings, selections, payments",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Access token issuance"},
        {"name": "Users", "description": "Registration and role management"},
        {"name": "Classes", "description": "Offering lifecycle and listings"},
        {"name": "Checkout", "description": "Cart, payment and enrollment"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/jwt": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IssueTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["Users"],
                "summary": "Register user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "Already registered"},
                    "201": {"description": "Created"}
                }
            },
            "get": {
                "tags": ["Users"],
                "summary": "List users (admin)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/admin/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Check admin role",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RoleCheck"}}
                }
            }
        },
        "/users/instructor/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Check instructor role",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RoleCheck"}}
                }
            }
        },
        "/users/admin/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Promote user to admin",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/instructor/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Promote user to instructor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Users"],
                "summary": "List instructors",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes": {
            "post": {
                "tags": ["Classes"],
                "summary": "Submit class (instructor)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created, status pending"}
                }
            },
            "get": {
                "tags": ["Classes"],
                "summary": "List every class (admin)",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/approvedClass": {
            "get": {
                "tags": ["Classes"],
                "summary": "List approved classes",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/topClasses": {
            "get": {
                "tags": ["Classes"],
                "summary": "Classes ranked by enrollment",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes/approve/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Approve class (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/deny/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Deny class (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/feedback/{id}": {
            "put": {
                "tags": ["Classes"],
                "summary": "Attach feedback (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes/showFeedback/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Show feedback (instructor)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/selectedClasses": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Select a class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/selectedClass": {
            "get": {
                "tags": ["Checkout"],
                "summary": "List the caller's cart",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/selectedClass/{id}": {
            "delete": {
                "tags": ["Checkout"],
                "summary": "Remove a selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Create a payment intent",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Intent"}}
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Complete checkout",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "No seats left", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "502": {"description": "Rolled back", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/paymentSuccessfully/{email}": {
            "get": {
                "tags": ["Checkout"],
                "summary": "Payment history",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/enrolledStudent/{email}": {
            "get": {
                "tags": ["Checkout"],
                "summary": "Enrolled classes",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/payments/export": {
            "get": {
                "tags": ["Checkout"],
                "summary": "Export payment ledger (admin)",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "IssueTokenRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photoURL": {"type": "string"}
            },
            "required": ["email", "name"]
        },
        "RoleCheck": {
            "type": "object",
            "properties": {
                "admin": {"type": "boolean"},
                "instructor": {"type": "boolean"}
            }
        },
        "SubmitClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "image": {"type": "string"},
                "instructorName": {"type": "string"},
                "price": {"type": "integer", "description": "minor units"},
                "totalSeats": {"type": "integer"}
            },
            "required": ["name", "instructorName", "price", "totalSeats"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            },
            "required": ["feedback"]
        },
        "SelectClassRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"}
            },
            "required": ["classId"]
        },
        "IntentRequest": {
            "type": "object",
            "properties": {
                "price": {"type": "integer", "description": "minor units"}
            },
            "required": ["price"]
        },
        "Intent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "amount": {"type": "integer"},
                "currency": {"type": "string"},
                "clientSecret": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "CheckoutRequest": {
            "type": "object",
            "properties": {
                "selectedClassId": {"type": "string"},
                "confirmation": {"type": "string"}
            },
            "required": ["selectedClassId", "confirmation"]
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
