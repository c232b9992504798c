package main

import (
	"log"

	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/server"
)

func main() {
	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	srv := server.NewServer(db)

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %s", err)
	}
}
