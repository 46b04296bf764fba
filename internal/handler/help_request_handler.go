package handler

import (
	"errors"
	"net/http"
	"net/url"

	"peaceconnect_service/internal/forms"
	"peaceconnect_service/internal/repository"
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/submission"
	"peaceconnect_service/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HelpRequestHandler struct {
	service   service.HelpRequestService
	suggester *submission.Suggester
	logger    *zap.Logger
}

func NewHelpRequestHandler(svc service.HelpRequestService, suggester *submission.Suggester, logger *zap.Logger) *HelpRequestHandler {
	return &HelpRequestHandler{
		service:   svc,
		suggester: suggester,
		logger:    logger.Named("help_request_handler"),
	}
}

// Probe answers the health check of the help-request form.
// @Summary Help-request endpoint health
// @Tags help-request
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/help-request [get]
func (h *HelpRequestHandler) Probe(c *gin.Context) {
	c.JSON(http.StatusOK, utils.Response{Success: true, Status: "ok"})
}

// Submit validates the posted form with the help-request rule set and
// stores it.
// @Summary Submit a help request
// @Tags help-request
// @Accept x-www-form-urlencoded
// @Produce json
// @Param help_type formData string true "legal, psychological, mediation, emergency, information or other"
// @Param urgency_level formData string true "low, medium, high or critical"
// @Param situation formData string true "10 to 5000 characters"
// @Param location formData string false "at most 100 characters"
// @Param contact_method formData string true "email, phone or both"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/help-request [post]
func (h *HelpRequestHandler) Submit(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	env, errs, ok := forms.ValidateHelpRequest(values, h.logger)
	if !ok {
		utils.ValidationFailed(c, submission.MsgFixErrors, errs)
		return
	}

	id, err := h.service.Create(c.Request.Context(), service.Fields(env.Values))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, id)
}

// Suggest returns the advice panel for a situation description.
// @Summary Suggest next steps for a situation
// @Tags help-request
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param description formData string true "situation description"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /api/help-request/suggestion [post]
func (h *HelpRequestHandler) Suggest(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	description := fields.Get("description")
	if description == "" {
		description = fields.Get("situation")
	}

	html, err := h.suggester.Suggest(c.Request.Context(), description)
	switch {
	case errors.Is(err, submission.ErrDescriptionEmpty):
		utils.Error(c, http.StatusBadRequest, submission.MsgDescriptionEmpty)
	case errors.Is(err, submission.ErrDescriptionTooShort):
		utils.Error(c, http.StatusBadRequest, submission.MsgDescriptionTooShort)
	case err != nil:
		_ = c.Error(err)
		utils.Error(c, http.StatusInternalServerError, submission.MsgSuggestionFailed)
	default:
		utils.Success(c, gin.H{"html": html})
	}
}

func (h *HelpRequestHandler) List(c *gin.Context) {
	reqs, err := h.service.List(c.Request.Context(), repository.HelpRequestFilter{
		HelpType:     c.Query("help_type"),
		Status:       c.Query("status"),
		UrgencyLevel: c.Query("urgency_level"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, reqs)
}

func (h *HelpRequestHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	req, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, req)
}

// Create stores a help request entered by staff. Only the required fields
// are checked.
func (h *HelpRequestHandler) Create(c *gin.Context) {
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

func (h *HelpRequestHandler) Update(c *gin.Context) {
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

func (h *HelpRequestHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Delete(c.Request.Context(), id)
	respondChange(c, id, found, err)
}
