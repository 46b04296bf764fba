package handler

import (
	"net/http"

	"peaceconnect_service/internal/repository"
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	service service.ArticleService
}

func NewArticleHandler(svc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

// ListPublished lists published articles, newest first.
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param testimony query bool false "only testimonies, or only non-testimonies"
// @Success 200 {object} utils.Response
// @Router /api/v1/articles [get]
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	h.list(c, service.PublishedStatus)
}

func (h *ArticleHandler) List(c *gin.Context) {
	h.list(c, c.Query("status"))
}

func (h *ArticleHandler) list(c *gin.Context, status string) {
	articles, err := h.service.List(c.Request.Context(), repository.ArticleFilter{
		Status:      status,
		IsTestimony: queryBool(c, "testimony"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, articles)
}

// GetPublished returns a published article.
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path int true "article id"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/articles/{id} [get]
func (h *ArticleHandler) GetPublished(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	article, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if article.Status != service.PublishedStatus {
		utils.Error(c, http.StatusNotFound, MsgNotFound)
		return
	}
	utils.Success(c, article)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	article, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, article)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	id, err := h.service.Create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, id)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	found, err := h.service.Update(c.Request.Context(), id, fields)
	respondChange(c, id, found, err)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Delete(c.Request.Context(), id)
	respondChange(c, id, found, err)
}

// ApprovedComments lists the approved comments of an article.
// @Summary List article comments
// @Tags articles
// @Produce json
// @Param id path int true "article id"
// @Success 200 {object} utils.Response
// @Router /api/v1/articles/{id}/comments [get]
func (h *ArticleHandler) ApprovedComments(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.PublishedComments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, comments)
}

func (h *ArticleHandler) AllComments(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.Comments(c.Request.Context(), id, false)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, comments)
}

// AddComment stores a comment awaiting moderation on a published article.
// @Summary Comment an article
// @Tags articles
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "article id"
// @Param author_name formData string true "author"
// @Param content formData string true "comment"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/articles/{id}/comments [post]
func (h *ArticleHandler) AddComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	commentID, err := h.service.AddPublicComment(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, commentID)
}

func (h *ArticleHandler) ApproveComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.ApproveComment(c.Request.Context(), id)
	respondChange(c, id, found, err)
}

func (h *ArticleHandler) DeleteComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.DeleteComment(c.Request.Context(), id)
	respondChange(c, id, found, err)
}
