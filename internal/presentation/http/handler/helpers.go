package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/response"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the staff role from the Gin context
func GetUserRole(c *gin.Context) string {
	return c.GetString("user_role")
}

// pathID parses the named path parameter as a UUID, writing a 400 on failure
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// pathService parses a service name such as "Bar" or "roomservice"
func pathService(c *gin.Context, name string) (enum.Service, bool) {
	raw := c.Param(name)
	for _, s := range enum.AllServices() {
		if strings.EqualFold(s.String(), raw) {
			return s, true
		}
	}
	response.BadRequest(c, "Unknown service "+raw)
	return 0, false
}

// bindError turns a binding failure into a 400
func bindError(c *gin.Context, err error) {
	response.BadRequest(c, "Invalid request body: "+err.Error())
}
