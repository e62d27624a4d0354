package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habit-tracker/internal/service"
)

func (s *Server) handleGetProfile(c *gin.Context) {
	user, err := s.users.Get(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": user.Name, "username": user.Username})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if _, err := s.users.UpdateProfile(c.Request.Context(), caller(c), service.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}
