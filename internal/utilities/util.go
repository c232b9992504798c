// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/model"

	"github.com/gin-gonic/gin"
)

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context. Returns an error
// when missing or of the wrong type instead of aborting the request.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, errors.New("User information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("Failed to assert type")
	}
	return user, nil
}

// ExtractPrincipal extracts the resolved principal set by RequireAuth.
func ExtractPrincipal(c *gin.Context) (access.Principal, error) {
	p, _ := c.Get("principal")
	if p == nil {
		return access.Principal{}, errors.New("Principal information not provided")
	}

	principal, ok := p.(access.Principal)
	if !ok {
		return access.Principal{}, errors.New("Failed to assert type")
	}
	return principal, nil
}
