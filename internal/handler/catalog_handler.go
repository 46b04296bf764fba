package handler

import (
	"context"
	"net/http"

	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories and themes. Both kinds share the same
// routes shape.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Categories lists the event and article categories by name.
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/v1/categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, categories)
}

// Themes lists the themes by name.
// @Summary List themes
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/v1/themes [get]
func (h *CatalogHandler) Themes(c *gin.Context) {
	themes, err := h.service.Themes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, themes)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	h.create(c, h.service.CreateCategory)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	h.update(c, h.service.UpdateCategory)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	h.delete(c, h.service.DeleteCategory)
}

func (h *CatalogHandler) CreateTheme(c *gin.Context) {
	h.create(c, h.service.CreateTheme)
}

func (h *CatalogHandler) UpdateTheme(c *gin.Context) {
	h.update(c, h.service.UpdateTheme)
}

func (h *CatalogHandler) DeleteTheme(c *gin.Context) {
	h.delete(c, h.service.DeleteTheme)
}

func (h *CatalogHandler) create(c *gin.Context, create func(context.Context, service.Fields) (uint, error)) {
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	id, err := create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, id)
}

func (h *CatalogHandler) update(c *gin.Context, update func(context.Context, uint, service.Fields) (bool, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	found, err := update(c.Request.Context(), id, fields)
	respondChange(c, id, found, err)
}

func (h *CatalogHandler) delete(c *gin.Context, remove func(context.Context, uint) (bool, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := remove(c.Request.Context(), id)
	respondChange(c, id, found, err)
}
