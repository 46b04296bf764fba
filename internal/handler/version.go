package handler

import (
	"fmt"
	"net/http"

	"peaceconnect_service/internal/config"

	"github.com/gin-gonic/gin"
)

// RegisterVersionEndpoint serves the build information.
func RegisterVersionEndpoint(router gin.IRoutes) {
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, config.GetVersion())
	}

	// @Summary      Build information
	// @Tags         system
	// @Produce      json
	// @Success      200  {object}  config.Version
	// @Router       /api/{api_version}/version [get]
	router.GET(fmt.Sprintf("/api/%s/version", config.GetAPIVersion()), handler)

	router.GET("/version", handler)
}
