package docs

import "github.com/swaggo/swag"

// @title           Task Manager API
// @version         1.0
// @description     API for assigning developers to tasks based on required skills, with LLM-assisted skill prediction

// @host      localhost:5000
// @BasePath  /

// @tag.name Tasks
// @tag.description Task admission, mutation and listing

// @tag.name Developers
// @tag.description Developer catalog (read-only)

// @tag.name Skills
// @tag.description Skill catalog (read-only)

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
