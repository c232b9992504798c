package auth

import (
	"errors"
	"fmt"
	"net/http"

	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginHandler holds DB reference for handler methods.
type LoginHandler struct {
	DB *database.DBinstanceStruct
}

// NewLoginHandler creates a new instance of LoginHandler with the provided database connection.
func NewLoginHandler(db *database.DBinstanceStruct) *LoginHandler {
	return &LoginHandler{
		DB: db,
	}
}

type loginInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshInfo struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login handles local login by receiving email and password
// @Summary Log in with email and password
// @Description Issues an access and refresh token pair on valid credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials"
// @Success 200 {object} tokenResponse "Token pair"
// @Failure 400 {object} utilities.ErrorResponse "Email or password is not provided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid credentials"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LoginHandler) Login(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password must be provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Preload("Role").Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid credentials",
		})
		return

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if !user.IsActive || !utilities.CheckPassword(user.Password, info.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid credentials",
		})
		return
	}

	accessToken, refreshToken, err := GenerateTokenPair(user, user.Role.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh exchanges a valid refresh token for a fresh token pair
// @Summary Refresh the token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body refreshInfo true "Refresh token"
// @Success 200 {object} tokenResponse "New token pair"
// @Failure 400 {object} utilities.ErrorResponse "Refresh token not provided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (lh *LoginHandler) Refresh(c *gin.Context) {
	var info refreshInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Refresh token must be provided",
		})
		return
	}

	token, err := ValidatedRefreshToken(info.RefreshToken)
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid refresh token",
		})
		return
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Issuer != JwtIssuer {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid refresh token",
		})
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid refresh token",
		})
		return
	}

	var user model.User
	if err := lh.DB.Preload("Role").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "User not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	accessToken, refreshToken, err := GenerateTokenPair(user, user.Role.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Profile returns the authenticated user's own record
// @Summary Get the logged-in user's profile
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User "The user record with role and permissions"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /auth/profile [get]
func (lh *LoginHandler) Profile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout acknowledges a logout. Tokens are stateless; the client discards
// them and the short access-token lifetime bounds the exposure.
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} utilities.MessageResponse "Logged out"
// @Router /auth/logout [post]
func (lh *LoginHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Logged out"})
}
