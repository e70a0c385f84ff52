package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/apperr"
)

// respondError maps a service error onto the wire. Errors outside the
// taxonomy are logged and reported generically without internal detail.
func respondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindInternal || ae.Kind == apperr.KindConfiguration {
			log.Printf("❌ %s: %v", c.FullPath(), err)
		}
		c.JSON(ae.Status(), gin.H{"error": gin.H{"kind": ae.Kind, "message": ae.Message}})
		return
	}

	log.Printf("❌ %s: %v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"kind": apperr.KindInternal, "message": "Internal Server Error"},
	})
}
