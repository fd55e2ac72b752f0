// Package docs 工具服务的 swagger 文档，和 internal/api_tool、internal/api_sys 中的注释保持一致
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
        "/api/v1/tools/docx": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tools"],
                "summary": "生成 Word 文档并返回下载来源",
                "parameters": [
                    {"description": "文档内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generator.DocxRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ToolResponse"}}}
            }
        },
        "/api/v1/tools/pptx": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tools"],
                "summary": "生成演示文稿并返回下载来源",
                "parameters": [
                    {"description": "演示文稿内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generator.PptxRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ToolResponse"}}}
            }
        },
        "/api/v1/tools/xlsx": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tools"],
                "summary": "生成 Excel 表格并返回下载来源",
                "parameters": [
                    {"description": "表格内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generator.XlsxRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ToolResponse"}}}
            }
        },
        "/api/v1/tools/file": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tools"],
                "summary": "创建文件并返回下载来源",
                "parameters": [
                    {"description": "文件内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generator.FileRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ToolResponse"}}}
            }
        },
        "/api/v1/generations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["generations"],
                "summary": "当前用户的生成记录",
                "parameters": [
                    {"type": "integer", "description": "偏移", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "数量", "name": "limit", "in": "query"},
                    {"type": "string", "description": "docx/pptx/xlsx/file", "name": "kind", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Response"}}}
            }
        },
        "/api/v1/generations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["generations"],
                "summary": "生成记录详情",
                "parameters": [
                    {"type": "integer", "description": "记录 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Response"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "健康检查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sysapi.HealthStatus"}},
                    "507": {"description": "Insufficient Storage", "schema": {"$ref": "#/definitions/sysapi.HealthStatus"}}
                }
            }
        }
    },
    "definitions": {
        "event.Event": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "status"},
                "data": {
                    "type": "object",
                    "properties": {
                        "status": {"type": "string", "enum": ["in_progress", "complete", "error"]},
                        "description": {"type": "string"},
                        "done": {"type": "boolean"}
                    }
                }
            }
        },
        "generator.Section": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["page_garde", "titre", "introduction", "heading", "contenu", "conclusion", "bibliographie"]},
                "titre": {"type": "string"},
                "sous_titre": {"type": "string"},
                "auteur": {"type": "string"},
                "date": {"type": "string"},
                "contenu": {"type": "string"},
                "niveau": {"type": "integer"},
                "references": {"type": "array", "items": {"type": "string"}}
            }
        },
        "generator.DocxRequest": {
            "type": "object",
            "properties": {
                "titre": {"type": "string"},
                "sous_titre": {"type": "string"},
                "auteur": {"type": "string"},
                "date": {"type": "string"},
                "logo_path": {"type": "string"},
                "inclure_table_matieres": {"type": "boolean"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/generator.Section"}}
            }
        },
        "generator.SlideSpec": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["titre", "chapitre", "contenu"]},
                "titre": {"type": "string"},
                "sous_titre": {"type": "string"},
                "contenu": {"type": "string"}
            }
        },
        "generator.PptxRequest": {
            "type": "object",
            "properties": {
                "language": {"type": "string", "example": "fr"},
                "confidentiality": {"type": "string", "enum": ["public", "internal", "confidential"]},
                "json_data": {
                    "type": "object",
                    "properties": {
                        "titre": {"type": "string"},
                        "slides": {"type": "array", "items": {"$ref": "#/definitions/generator.SlideSpec"}}
                    }
                }
            }
        },
        "generator.XlsxRequest": {
            "type": "object",
            "properties": {
                "titre": {"type": "string"},
                "feuilles": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "nom": {"type": "string"},
                            "tableau": {
                                "type": "object",
                                "properties": {
                                    "colonnes": {"type": "array", "items": {"type": "string"}},
                                    "données": {"type": "array", "items": {"type": "array", "items": {}}}
                                }
                            }
                        }
                    }
                }
            }
        },
        "generator.FileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "content": {"type": "string"},
                "extension": {"type": "string"}
            }
        },
        "service.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "service.ToolResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {
                    "type": "object",
                    "properties": {
                        "result": {"type": "string"},
                        "events": {"type": "array", "items": {"$ref": "#/definitions/event.Event"}}
                    }
                }
            }
        },
        "sysapi.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "disk_free": {"type": "integer"},
                "disk_used_percent": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo 运行时可修改的文档信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Document tools API",
	Description:      "Word / PowerPoint / Excel 生成工具",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
