package auth

import (
	"fmt"

	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"
)

// GetAccessToken logs a seeded user in directly against the database and
// returns a signed access token. Used by controller tests.
func GetAccessToken(db *database.DBinstanceStruct, email string, password string) (string, error) {
	var user model.User
	if err := db.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return "", err
	}
	if !utilities.CheckPassword(user.Password, password) {
		return "", fmt.Errorf("wrong password for %s", email)
	}
	accessToken, _, err := GenerateTokenPair(user, user.Role.Name)
	return accessToken, err
}
