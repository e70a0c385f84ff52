package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/apperr"
	"taskmanager/internal/service"
)

type SkillServiceInterface interface {
	GetAllSkills(ctx context.Context) ([]service.SkillView, error)
	GetSkillByID(ctx context.Context, id uint) (*service.SkillView, error)
}

type SkillHandler struct {
	skills SkillServiceInterface
}

func NewSkillHandler(skills SkillServiceInterface) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// GetAll handles GET /api/skills.
//
// @Summary  List skills
// @Tags     Skills
// @Produce  json
// @Success  200  {array}  service.SkillView
// @Router   /api/skills [get]
func (h *SkillHandler) GetAll(c *gin.Context) {
	skills, err := h.skills.GetAllSkills(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// GetByID handles GET /api/skills/:id.
//
// @Summary  Get a skill
// @Tags     Skills
// @Produce  json
// @Param    id   path      int  true  "Skill ID"
// @Success  200  {object}  service.SkillView
// @Failure  404  {object}  map[string]interface{}
// @Router   /api/skills/{id} [get]
func (h *SkillHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidRequest("Invalid skill ID"))
		return
	}

	skill, err := h.skills.GetSkillByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if skill == nil {
		respondError(c, apperr.NotFound("Skill", id))
		return
	}
	c.JSON(http.StatusOK, skill)
}
