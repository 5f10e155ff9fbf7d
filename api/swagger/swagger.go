package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CGPA Calculator API",
        "description": "Session-scoped GPA and CGPA calculator with a grade scale catalogue",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sessions", "description": "Calculator sessions owning one transcript"},
        {"name": "Semesters", "description": "Numbered semesters of a transcript"},
        {"name": "Courses", "description": "Courses with credits and a letter grade"},
        {"name": "Calculator", "description": "One-shot GPA/CGPA computation and classification"},
        {"name": "GradeScales", "description": "Grade tables and the printable reference sheet"},
        {"name": "Observability", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check of the session store and catalogue",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Observability"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "Prometheus exposition"}}
            }
        },
        "/api/v1/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Lightweight metrics snapshot",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a calculator session",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": false, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/TranscriptEnvelope"}},
                    "404": {"description": "Unknown grade scale", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get the transcript of a session",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TranscriptEnvelope"}},
                    "404": {"description": "Session not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "End a session and discard its transcript",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {
                    "204": {"description": "Ended"},
                    "404": {"description": "Session not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}/semesters": {
            "post": {
                "tags": ["Semesters"],
                "summary": "Append an empty semester",
                "parameters": [{"$ref": "#/parameters/SessionID"}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/SemesterEnvelope"}}}
            }
        },
        "/api/v1/sessions/{id}/semesters/{semesterId}": {
            "get": {
                "tags": ["Semesters"],
                "summary": "Get a semester with its GPA",
                "parameters": [{"$ref": "#/parameters/SessionID"}, {"$ref": "#/parameters/SemesterID"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SemesterEnvelope"}}}
            },
            "delete": {
                "tags": ["Semesters"],
                "summary": "Remove a semester and renumber the rest",
                "parameters": [{"$ref": "#/parameters/SessionID"}, {"$ref": "#/parameters/SemesterID"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TranscriptEnvelope"}}}
            }
        },
        "/api/v1/sessions/{id}/semesters/{semesterId}/courses": {
            "post": {
                "tags": ["Courses"],
                "summary": "Add a course to a semester",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/SessionID"},
                    {"$ref": "#/parameters/SemesterID"},
                    {"in": "body", "name": "payload", "required": false, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/SemesterEnvelope"}}}
            }
        },
        "/api/v1/sessions/{id}/semesters/{semesterId}/courses/{courseId}": {
            "patch": {
                "tags": ["Courses"],
                "summary": "Edit course name, credits or grade",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/SessionID"},
                    {"$ref": "#/parameters/SemesterID"},
                    {"$ref": "#/parameters/CourseID"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SemesterEnvelope"}}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Remove a course from a semester",
                "parameters": [{"$ref": "#/parameters/SessionID"}, {"$ref": "#/parameters/SemesterID"}, {"$ref": "#/parameters/CourseID"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SemesterEnvelope"}}}
            }
        },
        "/api/v1/gpa/compute": {
            "post": {
                "tags": ["Calculator"],
                "summary": "Compute GPA and/or CGPA without a session",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ComputeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Neither courses nor semesters given", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/gpa/classify": {
            "get": {
                "tags": ["Calculator"],
                "summary": "Classify a GPA",
                "parameters": [{"in": "query", "name": "gpa", "type": "number", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "gpa is not a number", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/grade-scales": {
            "get": {
                "tags": ["GradeScales"],
                "summary": "List grade scales",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/grade-scales/{code}": {
            "get": {
                "tags": ["GradeScales"],
                "summary": "Get a grade scale",
                "parameters": [{"$ref": "#/parameters/ScaleCode"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown scale", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/grade-scales/{code}/sheet": {
            "get": {
                "tags": ["GradeScales"],
                "summary": "Download the grade reference sheet",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"$ref": "#/parameters/ScaleCode"},
                    {"in": "query", "name": "format", "type": "string", "enum": ["pdf", "csv"], "default": "pdf"}
                ],
                "responses": {
                    "200": {"description": "Sheet file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "SessionID": {"in": "path", "name": "id", "type": "string", "required": true},
        "SemesterID": {"in": "path", "name": "semesterId", "type": "string", "required": true},
        "CourseID": {"in": "path", "name": "courseId", "type": "string", "required": true},
        "ScaleCode": {"in": "path", "name": "code", "type": "string", "required": true}
    },
    "definitions": {
        "CreateSessionRequest": {
            "type": "object",
            "properties": {"scale_code": {"type": "string", "example": "DEFAULT"}}
        },
        "CourseInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "credits": {"description": "Number or numeric string; anything else counts as 0", "type": "integer"},
                "grade": {"type": "string", "example": "A+"}
            }
        },
        "ComputeCourse": {
            "type": "object",
            "properties": {
                "credits": {"type": "integer"},
                "grade": {"type": "string"}
            }
        },
        "ComputeRequest": {
            "type": "object",
            "properties": {
                "scale_code": {"type": "string"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/ComputeCourse"}},
                "semesters": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"courses": {"type": "array", "items": {"$ref": "#/definitions/ComputeCourse"}}}
                    }
                }
            }
        },
        "Standing": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "enum": ["Outstanding", "Excellent", "Very Good", "Good", "Average", "Poor"]},
                "band": {"type": "string", "enum": ["success", "primary", "warning", "accent", "muted", "destructive"]}
            }
        },
        "Course": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "integer"},
                "grade": {"type": "string"},
                "grade_point": {"type": "number"},
                "complete": {"type": "boolean"}
            }
        },
        "Semester": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "number": {"type": "integer"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}},
                "course_count": {"type": "integer"},
                "completed_courses": {"type": "integer"},
                "credits": {"type": "integer"},
                "gpa": {"type": "number"},
                "gpa_display": {"type": "string"},
                "standing": {"$ref": "#/definitions/Standing"}
            }
        },
        "Transcript": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "scale_code": {"type": "string"},
                "semesters": {"type": "array", "items": {"$ref": "#/definitions/Semester"}},
                "cgpa": {"type": "number"},
                "cgpa_display": {"type": "string"},
                "standing": {"$ref": "#/definitions/Standing"},
                "total_credits": {"type": "integer"},
                "completed_courses": {"type": "integer"},
                "expires_at": {"type": "string", "format": "date-time"}
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
        },
        "TranscriptEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Transcript"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "SemesterEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Semester"},
                "error": {"$ref": "#/definitions/APIError"}
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
