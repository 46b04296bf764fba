package handler

import (
	"net/http"

	"peaceconnect_service/internal/repository"
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/utils"

	"github.com/gin-gonic/gin"
)

const publicVisibility = "public"

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// ListPublic lists public events by date.
// @Summary List public events
// @Tags events
// @Produce json
// @Param status query string false "event status"
// @Param category_id query int false "category id"
// @Success 200 {object} utils.Response
// @Router /api/v1/events [get]
func (h *EventHandler) ListPublic(c *gin.Context) {
	h.list(c, publicVisibility)
}

func (h *EventHandler) List(c *gin.Context) {
	h.list(c, c.Query("visibility"))
}

func (h *EventHandler) list(c *gin.Context, visibility string) {
	events, err := h.service.List(c.Request.Context(), repository.EventFilter{
		Status:     c.Query("status"),
		CategoryID: queryID(c, "category_id"),
		Visibility: visibility,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, events)
}

// GetPublic returns an event unless it is private.
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/events/{id} [get]
func (h *EventHandler) GetPublic(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if event.Visibility != publicVisibility {
		utils.Error(c, http.StatusNotFound, MsgNotFound)
		return
	}
	utils.Success(c, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, event)
}

func (h *EventHandler) Create(c *gin.Context) {
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

func (h *EventHandler) Update(c *gin.Context) {
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

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Delete(c.Request.Context(), id)
	respondChange(c, id, found, err)
}

// Register signs a participant up.
// @Summary Register to an event
// @Tags events
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "event id"
// @Param full_name formData string true "participant name"
// @Param email formData string true "participant email"
// @Param phone formData string false "participant phone"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/v1/events/{id}/registrations [post]
func (h *EventHandler) Register(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	regID, err := h.service.Register(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, regID)
}

func (h *EventHandler) Registrations(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	regs, err := h.service.Registrations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, regs)
}

func (h *EventHandler) ConfirmAttendance(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.ConfirmAttendance(c.Request.Context(), id)
	respondChange(c, id, found, err)
}

func (h *EventHandler) Unregister(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Unregister(c.Request.Context(), id)
	respondChange(c, id, found, err)
}
