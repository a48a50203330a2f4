// Package docs holds the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
            "get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}}
        },
        "/healthz": {
            "get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/documents": {
            "get": {
                "tags": ["documents"],
                "summary": "List documents",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Exact subject", "name": "subject", "in": "query"},
                    {"type": "string", "description": "Exact year", "name": "year", "in": "query"},
                    {"type": "string", "description": "Uploader id", "name": "uploaderId", "in": "query"},
                    {"type": "string", "description": "submitted, approved or rejected", "name": "status", "in": "query"},
                    {"type": "string", "description": "Search title, description and uploader name", "name": "q", "in": "query"},
                    {"type": "string", "description": "RFC3339 lower bound on createdAt", "name": "since", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentList"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "post": {
                "tags": ["documents"],
                "summary": "Upload a document",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Caller display name", "name": "X-User-Name", "in": "header", "required": true},
                    {"type": "file", "description": "Document file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Subject", "name": "subject", "in": "formData", "required": true},
                    {"type": "string", "description": "assignment, notes, project, thesis or other", "name": "documentType", "in": "formData", "required": true},
                    {"type": "string", "description": "Year", "name": "year", "in": "formData", "required": true},
                    {"type": "string", "description": "Branch", "name": "branch", "in": "formData", "required": true}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Document"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/documents/mine": {
            "get": {"tags": ["documents"], "summary": "List my documents", "parameters": [{"type": "string", "name": "X-User-ID", "in": "header", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentList"}}}}
        },
        "/documents/{id}": {
            "get": {"tags": ["documents"], "summary": "Get a document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}},
            "delete": {"tags": ["documents"], "summary": "Withdraw a document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "X-User-ID", "in": "header", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/documents/{id}/location": {
            "get": {"tags": ["documents"], "summary": "Get a document's file location", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FileLocation"}}, "404": {"description": "Not Found"}}}
        },
        "/documents/{id}/approve": {
            "post": {"tags": ["review"], "summary": "Approve a document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "X-User-ID", "in": "header", "required": true}, {"type": "string", "name": "X-User-Role", "in": "header", "required": true}, {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.reviewRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/documents/{id}/reject": {
            "post": {"tags": ["review"], "summary": "Reject a document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "X-User-ID", "in": "header", "required": true}, {"type": "string", "name": "X-User-Role", "in": "header", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.reviewRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "List notifications", "parameters": [{"type": "string", "name": "X-User-ID", "in": "header", "required": true}, {"type": "string", "name": "audience", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.notificationList"}}}}
        },
        "/notifications/unread-count": {
            "get": {"tags": ["notifications"], "summary": "Count unread notifications", "parameters": [{"type": "string", "name": "X-User-ID", "in": "header", "required": true}, {"type": "string", "name": "audience", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications/{id}/read": {
            "post": {"tags": ["notifications"], "summary": "Mark a notification read", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/notifications/read-all": {
            "post": {"tags": ["notifications"], "summary": "Mark all notifications read", "parameters": [{"type": "string", "name": "X-User-ID", "in": "header", "required": true}, {"type": "string", "name": "audience", "in": "query"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/analytics": {
            "get": {"tags": ["analytics"], "summary": "Upload analytics", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Analytics"}}}}
        }
    },
    "definitions": {
        "handler.errorEnvelope": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "fields": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "handler.errorPayload": {"type": "object", "properties": {"request_id": {"type": "string"}, "error": {"$ref": "#/definitions/handler.errorEnvelope"}}},
        "handler.reviewRequest": {"type": "object", "properties": {"comment": {"type": "string"}}},
        "handler.documentList": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}}, "total": {"type": "integer"}}},
        "handler.notificationList": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/model.Notification"}}, "unreadCount": {"type": "integer"}}},
        "model.Identity": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "rollNumber": {"type": "string"}, "role": {"type": "string", "enum": ["student", "professor"]}}},
        "model.Document": {"type": "object", "properties": {
            "id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"},
            "fileName": {"type": "string"}, "fileType": {"type": "string"}, "fileSize": {"type": "integer"}, "fileLocation": {"type": "string"},
            "subject": {"type": "string"}, "documentType": {"type": "string", "enum": ["assignment", "notes", "project", "thesis", "other"]},
            "year": {"type": "string"}, "branch": {"type": "string"},
            "status": {"type": "string", "enum": ["submitted", "approved", "rejected"]},
            "professorComment": {"type": "string"}, "reviewedBy": {"$ref": "#/definitions/model.Identity"}, "reviewedAt": {"type": "string"},
            "uploadedBy": {"$ref": "#/definitions/model.Identity"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "model.Notification": {"type": "object", "properties": {"id": {"type": "string"}, "recipientId": {"type": "string"}, "type": {"type": "string", "enum": ["approval", "rejection", "new_document", "comment"]}, "message": {"type": "string"}, "documentId": {"type": "string"}, "documentTitle": {"type": "string"}, "read": {"type": "boolean"}, "createdAt": {"type": "string"}}},
        "model.Analytics": {"type": "object", "properties": {"totalUploads": {"type": "integer"}, "subjectWise": {"type": "array", "items": {"type": "object"}}, "studentWise": {"type": "array", "items": {"type": "object"}}, "statusWise": {"type": "array", "items": {"type": "object"}}, "recentUploads": {"type": "integer"}}},
        "service.FileLocation": {"type": "object", "properties": {"documentId": {"type": "string"}, "location": {"type": "string"}, "fileName": {"type": "string"}, "fileType": {"type": "string"}, "url": {"type": "string"}, "expiresAt": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Document Portal API",
	Description:      "Submission, review, notification and analytics endpoints for academic documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
