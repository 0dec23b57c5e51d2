// Package docs holds the swagger template for the admin api. It is maintained by hand to match the @Router annotations
package docs

import "github.com/swaggo/swag/v2"

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
        "/facilities/reload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Facilities"],
                "summary": "Run a reconciliation cycle now",
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/report.Report"}},
                    "409": {"description": "reload already in progress", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}},
                    "503": {"description": "upstream unavailable", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}}
                }
            }
        },
        "/facilities/reload/last": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Facilities"],
                "summary": "Most recent reload or upload report of this instance",
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/report.Report"}},
                    "404": {"description": "no report yet", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}}
                }
            }
        },
        "/facilities/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Facilities"],
                "summary": "Reconcile an uploaded batch without a missing sweep",
                "parameters": [
                    {"description": "Facilities", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UploadInput"}}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/report.Report"}},
                    "409": {"description": "reload already in progress", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}}
                }
            }
        },
        "/facilities/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Facilities"],
                "summary": "Lifecycle state of one facility",
                "parameters": [
                    {"type": "string", "description": "Facility id, e.g. vha_402GA", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.LifecycleView"}},
                    "422": {"description": "malformed facility id", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Facilities"],
                "summary": "Delete a facility from the active and tombstone stores",
                "parameters": [
                    {"type": "string", "description": "Facility id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "deleted"},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}},
                    "409": {"description": "facility carries curated overlay data", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}},
                    "503": {"description": "reload in progress, retry later", "schema": {"$ref": "#/definitions/swaggerkit.ErrorResponse"}}
                }
            }
        },
        "/meta/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Health check",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.HealthResponse"}}}
            }
        },
        "/meta/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Readiness probe with dependency checks",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.ReadyResponse"}}}
            }
        },
        "/meta/service": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Service info and uptime",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.ServiceResponse"}}}
            }
        },
        "/meta/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/version.BuildInfo"}}}
            }
        }
    },
    "definitions": {
        "domain.LifecycleView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "vha_402GA"},
                "state": {"type": "string", "enum": ["absent", "active", "missing", "tombstoned"]},
                "record": {"type": "object"},
                "tombstone": {"type": "object"},
                "missing_timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "http.UploadInput": {
            "type": "object",
            "required": ["facilities"],
            "properties": {
                "facilities": {"type": "array", "minItems": 1, "items": {"type": "object"}}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true},
                "service": {"type": "string", "example": "facilities-api"},
                "started": {"type": "string", "example": "2026-10-01T13:00:00Z"},
                "now": {"type": "string", "example": "2026-10-01T13:05:00Z"}
            }
        },
        "http.ReadyCheck": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "pg"},
                "status": {"type": "string", "enum": ["ok", "fail", "skipped"]},
                "error": {"type": "string"},
                "latency_ms": {"type": "integer", "example": 3}
            }
        },
        "http.ReadyResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["ok", "degraded", "fail"]},
                "checks": {"type": "array", "items": {"$ref": "#/definitions/http.ReadyCheck"}},
                "now": {"type": "string"}
            }
        },
        "http.ServiceResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "facilities-api"},
                "started": {"type": "string"},
                "uptime": {"type": "integer", "example": 300}
            }
        },
        "report.Problem": {
            "type": "object",
            "properties": {
                "facility_id": {"type": "string", "example": "vha_402GA"},
                "message": {"type": "string", "example": "Missing classification"}
            }
        },
        "report.Timing": {
            "type": "object",
            "properties": {
                "collection_started": {"type": "string", "format": "date-time"},
                "collection_completed": {"type": "string", "format": "date-time"},
                "reconciliation_completed": {"type": "string", "format": "date-time"}
            }
        },
        "report.Report": {
            "type": "object",
            "properties": {
                "cycle_id": {"type": "string"},
                "kind": {"type": "string", "enum": ["reload", "upload"]},
                "created": {"type": "array", "items": {"type": "string"}},
                "updated": {"type": "array", "items": {"type": "string"}},
                "missing": {"type": "array", "items": {"type": "string"}},
                "removed": {"type": "array", "items": {"type": "string"}},
                "revived": {"type": "array", "items": {"type": "string"}},
                "purged": {"type": "array", "items": {"type": "string"}},
                "problems": {"type": "array", "items": {"$ref": "#/definitions/report.Problem"}},
                "timing": {"$ref": "#/definitions/report.Timing"}
            }
        },
        "version.BuildInfo": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "version": {"type": "string"},
                "commit": {"type": "string"},
                "date": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Facilities API",
	Description:      "Facility reconciliation and lifecycle engine",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
