// Package docs provides Swagger documentation for the API.
package docs

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
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/informationobjects/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["informationobjects"],
                "summary": "Random unrequested targets",
                "parameters": [
                    {"type": "array", "items": {"type": "integer"}, "collectionFormat": "multi", "name": "campaign", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.InformationObjectItem"}}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/informationobjects/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["informationobjects"],
                "summary": "Search targets",
                "parameters": [
                    {"type": "array", "items": {"type": "integer"}, "collectionFormat": "multi", "name": "campaign", "in": "query", "required": true},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "has_request", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.InformationObjectItem"}}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/campaigns/{id}/provider/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["provider"],
                "summary": "Search campaign targets",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "boolean", "name": "requested", "in": "query"},
                    {"type": "number", "name": "lat", "in": "query"},
                    {"type": "number", "name": "lng", "in": "query"},
                    {"type": "integer", "default": 1000, "name": "radius", "in": "query"},
                    {"type": "integer", "name": "zoom", "in": "query"},
                    {"type": "integer", "default": 50, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ProviderItem"}}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/campaigns/{id}/provider/detail/{ident}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["provider"],
                "summary": "Campaign target detail",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "ident", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProviderItem"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/campaigns/{id}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["excel"],
                "summary": "Export campaign targets to Excel",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Excel file", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/campaign/{campaign_id}/{ident}/request/": {
            "get": {
                "tags": ["provider"],
                "summary": "Redirect to the prefilled request form",
                "parameters": [
                    {"type": "integer", "name": "campaign_id", "in": "path", "required": true},
                    {"type": "string", "name": "ident", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirect to the request form"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/campaigns/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List public campaigns",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CampaignIndexResponse"}}
                }
            }
        },
        "/campaigns/{slug}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Campaign page",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "name": "q", "in": "query"},
                    {"enum": ["0", "1", "2"], "type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "string", "name": "random", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CampaignPageResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/plugins/map/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plugins"],
                "summary": "Map widget config",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/plugins/list/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plugins"],
                "summary": "List widget config",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/plugins/requests/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plugins"],
                "summary": "Request list widget",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/plugins/questionnaire/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plugins"],
                "summary": "Questionaire widget",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "models.InformationObjectItem": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "request_url": {"type": "string"},
                "description": {"type": "string"},
                "publicbody_name": {"type": "string"}
            }
        },
        "models.RequestLink": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "resolution": {"type": "string"}
            }
        },
        "models.ProviderItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ident": {"type": "string"},
                "title": {"type": "string"},
                "subtitle": {"type": "string"},
                "address": {"type": "string"},
                "request_url": {"type": "string"},
                "publicbody_name": {"type": "string"},
                "description": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "foirequest": {"type": "integer"},
                "foirequests": {"type": "array", "items": {"$ref": "#/definitions/models.RequestLink"}},
                "resolution": {"type": "string"},
                "context": {"type": "object"}
            }
        },
        "models.CampaignResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "models.CampaignIndexResponse": {
            "type": "object",
            "properties": {
                "campaigns": {"type": "array", "items": {"$ref": "#/definitions/models.CampaignResponse"}}
            }
        },
        "models.CampaignPageResponse": {
            "type": "object",
            "properties": {
                "campaign": {"$ref": "#/definitions/models.CampaignResponse"},
                "object_list": {"type": "array", "items": {"type": "object"}},
                "pagination": {"type": "object"},
                "getvars": {"type": "string"},
                "getvars_complete": {"type": "string"},
                "total_count": {"type": "integer"},
                "done_count": {"type": "integer"},
                "pending_count": {"type": "integer"},
                "progress_pending": {"type": "string", "example": "10.0"},
                "progress_done": {"type": "string", "example": "20.0"},
                "status_choices": {"type": "array", "items": {"type": "object"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Enter ` + "`" + `Bearer ` + "`" + ` followed by a platform access token",
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
	Title:            "Campaign Service API",
	Description:      "Campaigns of request targets: listing, search, map and questionaire widgets and request links",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
