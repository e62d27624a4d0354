package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"habit-tracker/internal/completion"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

// respondError maps service errors onto HTTP statuses. Validation problems
// and bad credentials are the caller's fault; a version conflict is
// retryable; everything unexpected is a 500 with the detail kept out of the
// response body.
func respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, completion.ErrHabitArchived):
		c.JSON(http.StatusConflict, gin.H{"message": "habit is archived"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "habit was modified concurrently, reload and retry"})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
	}
}
