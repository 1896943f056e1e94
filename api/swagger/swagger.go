package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduGrade API",
        "description": "Grade aggregation and classification engine for teacher gradebooks",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Gradebook", "description": "Averages, final grades and trends computed from a gradebook snapshot"}
    ],
    "paths": {
        "/gradebook/defaults": {
            "get": {
                "tags": ["Gradebook"],
                "summary": "Default gradebook settings",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gradebook/normalize": {
            "post": {
                "tags": ["Gradebook"],
                "summary": "Complete legacy grade records",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NormalizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gradebook/classify": {
            "post": {
                "tags": ["Gradebook"],
                "summary": "Classify a percentage",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gradebook/percentage": {
            "get": {
                "tags": ["Gradebook"],
                "summary": "Display percentage of an average",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "average", "in": "query", "required": true, "type": "number"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gradebook/students/{studentId}/report": {
            "post": {
                "tags": ["Gradebook"],
                "summary": "Compute a student report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Gradebook"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Snapshot too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gradebook/classes/{classId}/report": {
            "post": {
                "tags": ["Gradebook"],
                "summary": "Compute a class report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "classId", "in": "path", "required": true, "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Gradebook"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "Snapshot too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gradebook/classes/{classId}/export": {
            "post": {
                "tags": ["Gradebook"],
                "summary": "Export a class report",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "classId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Gradebook"}}
                ],
                "responses": {
                    "200": {"description": "Rendered document", "schema": {"type": "file"}},
                    "400": {"description": "Validation error or unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PercentageRange": {
            "type": "object",
            "properties": {
                "grade": {"type": "integer", "minimum": 1, "maximum": 5},
                "minPercent": {"type": "number"},
                "maxPercent": {"type": "number"}
            }
        },
        "Category": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "weight": {"type": "number", "minimum": 0.1, "maximum": 1},
                "allowPlusMinus": {"type": "boolean"},
                "onlyPlusMinus": {"type": "boolean"}
            }
        },
        "Grade": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "categoryId": {"type": "string"},
                "categoryName": {"type": "string"},
                "weight": {"type": "number"},
                "value": {"description": "Number between 1 and 6, or one of + ~ -"},
                "isPlusMinus": {"type": "boolean"},
                "name": {"type": "string"},
                "subjectId": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "excludeFromAverage": {"type": "boolean"},
                "enteredAsPercent": {"type": "boolean"},
                "percentValue": {"type": "number"}
            }
        },
        "Student": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "classId": {"type": "string"},
                "grades": {"type": "array", "items": {"$ref": "#/definitions/Grade"}}
            }
        },
        "Class": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Gradebook": {
            "type": "object",
            "properties": {
                "revision": {"type": "string"},
                "teacherName": {"type": "string"},
                "currentClassId": {"type": "string"},
                "classes": {"type": "array", "items": {"$ref": "#/definitions/Class"}},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/Category"}},
                "students": {"type": "array", "items": {"$ref": "#/definitions/Student"}},
                "gradePercentageRanges": {"type": "array", "items": {"$ref": "#/definitions/PercentageRange"}},
                "plusMinusPercentages": {
                    "type": "object",
                    "properties": {
                        "plus": {"type": "number"},
                        "neutral": {"type": "number"},
                        "minus": {"type": "number"}
                    }
                },
                "plusMinusGradeSettings": {
                    "type": "object",
                    "properties": {
                        "mode": {"type": "string", "enum": ["percentage", "startGrade"]},
                        "startGrade": {"type": "number"},
                        "plusValue": {"type": "number"},
                        "minusValue": {"type": "number"}
                    }
                }
            }
        },
        "NormalizeRequest": {
            "type": "object",
            "properties": {
                "grades": {"type": "array", "items": {"$ref": "#/definitions/Grade"}},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/Category"}}
            }
        },
        "ClassifyRequest": {
            "type": "object",
            "required": ["percentage"],
            "properties": {
                "percentage": {"type": "number", "minimum": 0, "maximum": 100},
                "ranges": {"type": "array", "items": {"$ref": "#/definitions/PercentageRange"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
