// Command-line tool to create a super-admin account with generated credentials.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"
)

// generateRandomString creates a random hex string of length n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

func main() {
	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	var adminRole model.Role
	if err := db.Where("name = ?", access.RoleAdmin).First(&adminRole).Error; err != nil {
		log.Fatal("ADMIN role is missing, run migrations first: ", err)
	}

	email := fmt.Sprintf("admin_%s@recruitpilot.local", generateRandomString(4))
	password := generateRandomString(8)

	hashedPassword, err := utilities.HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	admin := model.User{
		FullName: "Administrator",
		Email:    email,
		Password: hashedPassword,
		RoleID:   adminRole.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	// Print credentials (only show plain password here!)
	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")

	os.Exit(0)
}
