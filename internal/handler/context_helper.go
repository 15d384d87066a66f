package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campuseventhub/campus-event-hub/internal/middleware"
	"github.com/campuseventhub/campus-event-hub/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

func userFromContext(c *gin.Context) *models.User {
	user, ok := middleware.User(c)
	if !ok {
		return nil
	}
	return user
}
