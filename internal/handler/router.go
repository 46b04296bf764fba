package handler

import (
	"peaceconnect_service/internal/config"
	"peaceconnect_service/pkg/healthcheck"
	"peaceconnect_service/pkg/middleware"
	"peaceconnect_service/pkg/websocketManager"

	_ "peaceconnect_service/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handlers groups every route handler for NewRouter.
type Handlers struct {
	fx.In

	HelpRequest *HelpRequestHandler
	Event       *EventHandler
	Article     *ArticleHandler
	Catalog     *CatalogHandler
	Dashboard   *DashboardHandler
	WebSocket   *websocketManager.WebSocketHandler
}

func setMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	}
}

func NewRouter(cfg *config.Config, h Handlers, health *healthcheck.Manager, logger *zap.Logger) *gin.Engine {
	setMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger), middleware.Cors())

	r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	health.Install(r)
	RegisterVersionEndpoint(r)

	help := r.Group("/api/help-request")
	{
		help.GET("", h.HelpRequest.Probe)
		help.POST("", h.HelpRequest.Submit)
		help.POST("/suggestion", h.HelpRequest.Suggest)
	}

	api := r.Group("/api/v1")
	configurePublicRoutes(api, h)
	configureAdminRoutes(api.Group("/admin"), h)

	return r
}

func configurePublicRoutes(api *gin.RouterGroup, h Handlers) {
	api.GET("/events", h.Event.ListPublic)
	api.GET("/events/:id", h.Event.GetPublic)
	api.POST("/events/:id/registrations", h.Event.Register)

	api.GET("/articles", h.Article.ListPublished)
	api.GET("/articles/:id", h.Article.GetPublished)
	api.GET("/articles/:id/comments", h.Article.ApprovedComments)
	api.POST("/articles/:id/comments", h.Article.AddComment)

	api.GET("/categories", h.Catalog.Categories)
	api.GET("/themes", h.Catalog.Themes)
}

func configureAdminRoutes(admin *gin.RouterGroup, h Handlers) {
	admin.GET("/dashboard", h.Dashboard.Stats)
	admin.GET("/ws", h.WebSocket.HandleConnection)

	admin.GET("/events", h.Event.List)
	admin.POST("/events", h.Event.Create)
	admin.GET("/events/:id", h.Event.Get)
	admin.PUT("/events/:id", h.Event.Update)
	admin.DELETE("/events/:id", h.Event.Delete)
	admin.GET("/events/:id/registrations", h.Event.Registrations)
	admin.PUT("/registrations/:id/confirm", h.Event.ConfirmAttendance)
	admin.DELETE("/registrations/:id", h.Event.Unregister)

	admin.GET("/articles", h.Article.List)
	admin.POST("/articles", h.Article.Create)
	admin.GET("/articles/:id", h.Article.Get)
	admin.PUT("/articles/:id", h.Article.Update)
	admin.DELETE("/articles/:id", h.Article.Delete)
	admin.GET("/articles/:id/comments", h.Article.AllComments)
	admin.PUT("/comments/:id/approve", h.Article.ApproveComment)
	admin.DELETE("/comments/:id", h.Article.DeleteComment)

	admin.GET("/categories", h.Catalog.Categories)
	admin.POST("/categories", h.Catalog.CreateCategory)
	admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

	admin.GET("/themes", h.Catalog.Themes)
	admin.POST("/themes", h.Catalog.CreateTheme)
	admin.PUT("/themes/:id", h.Catalog.UpdateTheme)
	admin.DELETE("/themes/:id", h.Catalog.DeleteTheme)

	admin.GET("/help-requests", h.HelpRequest.List)
	admin.POST("/help-requests", h.HelpRequest.Create)
	admin.GET("/help-requests/:id", h.HelpRequest.Get)
	admin.PUT("/help-requests/:id", h.HelpRequest.Update)
	admin.DELETE("/help-requests/:id", h.HelpRequest.Delete)
}
