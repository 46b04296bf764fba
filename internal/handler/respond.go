package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"peaceconnect_service/internal/repository"
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	MsgNotFound          = "Ressource introuvable"
	MsgInvalidID         = "Identifiant invalide"
	MsgInvalidBody       = "Corps de requête invalide"
	MsgAlreadyRegistered = "Vous êtes déjà inscrit à cet événement."
	MsgDuplicateName     = "Ce nom existe déjà."
	MsgDuplicate         = "Cette ressource existe déjà."
)

// bindFields reads a form-encoded, multipart or flat JSON body. JSON
// numbers and booleans are kept in their canonical text form.
func bindFields(c *gin.Context) (service.Fields, error) {
	fields := service.Fields{}

	if c.ContentType() == gin.MIMEJSON {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		for k, v := range raw {
			fields[k] = stringify(v)
		}
		return fields, nil
	}

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	data, _ := json.Marshal(v)
	return string(data)
}

// idParam parses the named path parameter. It answers 400 and returns
// false when the value is not a positive integer.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, MsgInvalidID)
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(id)
}

// queryBool returns nil when the parameter is absent or not a boolean.
func queryBool(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &b
}

// respondError maps service errors to HTTP answers.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, verr.Message, map[string][]string{verr.Field: {verr.Message}})
	case errors.Is(err, service.ErrNotFound):
		utils.Error(c, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, service.ErrDuplicateRegistration):
		utils.Error(c, http.StatusConflict, MsgAlreadyRegistered)
	case errors.Is(err, service.ErrDuplicateName):
		_ = c.Error(err)
		utils.Error(c, http.StatusConflict, MsgDuplicateName)
	case errors.Is(err, repository.ErrDuplicate):
		_ = c.Error(err)
		utils.Error(c, http.StatusConflict, MsgDuplicate)
	default:
		utils.ServerError(c, err)
	}
}

// respondChange answers an update or delete: 404 when nothing matched.
func respondChange(c *gin.Context, id uint, found bool, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		utils.Error(c, http.StatusNotFound, MsgNotFound)
		return
	}
	c.JSON(http.StatusOK, utils.Response{Success: true, ID: id})
}
