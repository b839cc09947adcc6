package main

import (
	"log"
	"net/http"
	"time"

	"fitcheck/internal/config"
	"fitcheck/internal/devserver"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv := devserver.New(cfg.JWTSecret, time.Duration(cfg.AccessTokenMaxAge)*time.Second)

	addr := ":" + cfg.ServerPort
	log.Printf("[DevServer] FitCheck dev API listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
