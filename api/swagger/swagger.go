package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Timetable API",
        "description": "Room and timeslot allocation for a weekly campus timetable",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Rooms", "description": "Room inventory"},
        {"name": "Departments", "description": "Departments owning rooms and courses"},
        {"name": "Courses", "description": "Courses and their weekly quotas"},
        {"name": "Schedule", "description": "Manual placement, auto-scheduling and timetable views"},
        {"name": "Exams", "description": "Fixed exam placements"},
        {"name": "Templates", "description": "Saved timetable snapshots"},
        {"name": "Export", "description": "JSON/CSV/PDF export and import"},
        {"name": "Authentication", "description": "Operator accounts"}
    ],
    "paths": {
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create room",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/rooms/available": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Rank rooms free for a course at an interval",
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "start_time", "in": "query", "type": "string", "required": true},
                    {"name": "end_time", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get room",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update room",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Delete room and its scheduled sessions",
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "List departments",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Departments"],
                "summary": "Create department",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses with scheduling status",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List schedule entries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/schedule/manual": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Place a session manually",
                "description": "Omit room_id to auto-pick the best free room. Capacity shortfall on an explicit room is a warning, not an error.",
                "responses": {
                    "201": {"description": "Placed"},
                    "409": {"description": "Room or instructor conflict"}
                }
            }
        },
        "/schedule/auto": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Run the greedy auto-scheduler",
                "responses": {"200": {"description": "Run summary with unplaced courses"}}
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Weekly timetable grouped by day",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exams",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule a fixed exam",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Room or instructor conflict"}
                }
            }
        },
        "/templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List saved templates",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Snapshot the current timetable",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/templates/{id}/restore": {
            "post": {
                "tags": ["Templates"],
                "summary": "Restore the schedule from a template",
                "responses": {"200": {"description": "Restored and skipped counts"}}
            }
        },
        "/export/json": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the full dataset as JSON",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Export"],
                "summary": "Import a previously exported snapshot",
                "responses": {"200": {"description": "Imported and skipped counts"}}
            }
        },
        "/export/csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the schedule as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/export/pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the week grid as PDF",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate and receive an access token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
