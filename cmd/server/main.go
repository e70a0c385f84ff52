package main

import (
	"log"

	_ "taskmanager/docs"
	"taskmanager/internal/config"
	"taskmanager/internal/server"
)

// @title           Task Manager API
// @version         1.0
// @description     API for skill-aware task assignment with LLM-assisted skill prediction.

// @host      localhost:5000
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
