package docs

import "github.com/swaggo/swag"

// @title           Task Workflow Board API
// @version         1.0
// @description     Task workflow and scheduling board: role-gated transitions, the director's week grid, the worker's kanban board and the review queue

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Boards
// @tag.description Week grid and kanban projections

// @tag.name Tasks
// @tag.description Task lifecycle operations

// @tag.name Review
// @tag.description Director review queue

const docTemplate = `{
    "schemes": ["http"],
    "swagger": "2.0",
    "info": {
        "description": "Task workflow and scheduling board API",
        "title": "Task Workflow Board API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Task Workflow Board API",
	Description:      "Task workflow and scheduling board API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
