package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/apperr"
	"taskmanager/internal/service"
)

type DeveloperServiceInterface interface {
	GetAllDevelopers(ctx context.Context) ([]service.DeveloperView, error)
	GetDeveloperByID(ctx context.Context, id uint) (*service.DeveloperView, error)
}

type DeveloperHandler struct {
	developers DeveloperServiceInterface
}

func NewDeveloperHandler(developers DeveloperServiceInterface) *DeveloperHandler {
	return &DeveloperHandler{developers: developers}
}

// GetAll handles GET /api/developers.
//
// @Summary  List developers
// @Tags     Developers
// @Produce  json
// @Success  200  {array}  service.DeveloperView
// @Router   /api/developers [get]
func (h *DeveloperHandler) GetAll(c *gin.Context) {
	developers, err := h.developers.GetAllDevelopers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, developers)
}

// GetByID handles GET /api/developers/:id.
//
// @Summary  Get a developer
// @Tags     Developers
// @Produce  json
// @Param    id   path      int  true  "Developer ID"
// @Success  200  {object}  service.DeveloperView
// @Failure  404  {object}  map[string]interface{}
// @Router   /api/developers/{id} [get]
func (h *DeveloperHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidRequest("Invalid developer ID"))
		return
	}

	developer, err := h.developers.GetDeveloperByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, developer)
}
