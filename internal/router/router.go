package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/okfde/froide-campaign-service/internal/config"
	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/handlers"
	"github.com/okfde/froide-campaign-service/internal/middleware"
	"github.com/okfde/froide-campaign-service/internal/services"
	"github.com/okfde/froide-campaign-service/internal/services/auth"
	"github.com/okfde/froide-campaign-service/internal/services/excel"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

// Dependencies are the shared resources the routes are built on
type Dependencies struct {
	DB     *gorm.DB
	Redis  *redis.Client
	GeoIP  *services.GeoIPService
	Config *config.AppConfig
}

// SetupRouter configures the Gin router with all campaign routes
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	gin.SetMode(gin.ReleaseMode)
	r := newEngine()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	campaignRepo := repository.NewCampaignRepository(deps.DB)
	iobjRepo := repository.NewInformationObjectRepository(deps.DB)
	foiRequestRepo := repository.NewFoiRequestRepository(deps.DB)
	pluginRepo := repository.NewPluginRepository(deps.DB)

	providers := provider.NewFactory(iobjRepo, foiRequestRepo, provider.URLConfig{
		BasePath:       cfg.BasePath,
		MakeRequestURL: cfg.MakeRequestURL,
	})

	campaignService := services.NewCampaignService(campaignRepo, iobjRepo, providers, cfg.BasePath)
	iobjService := services.NewInformationObjectService(iobjRepo, cfg.SiteURL, cfg.BasePath)
	pluginService := services.NewPluginService(pluginRepo, iobjRepo, providers, deps.GeoIP, cfg.StaticURL)
	excelService := excel.NewExcelService(campaignService, iobjRepo)
	pageCache := services.NewPageCache(deps.Redis, cfg.PageCacheTTL)
	tokenService := auth.NewTokenService(cfg.JWTSecret)

	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(tokenService)

	iobjHandler := handlers.NewInformationObjectHandler(iobjService)
	providerHandler := handlers.NewProviderHandler(campaignService)
	redirectHandler := handlers.NewRedirectHandler(campaignService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	pluginHandler := handlers.NewPluginHandler(pluginService)
	excelHandler := handlers.NewExcelHandler(excelService)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := r.Group(cfg.BasePath)
	root.Use(bearerTokenMiddleware.OptionalAuth())

	if cfg.EnableSwagger {
		root.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logrus.Info("Swagger UI endpoint registered at /swagger/index.html")
	}

	// API v1 routes
	api := root.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		iobjs := api.Group("/informationobjects")
		{
			iobjs.GET("/random", iobjHandler.Random)
			iobjs.GET("/search", iobjHandler.Search)
		}

		campaigns := api.Group("/campaigns/:id")
		{
			registerProviderRoutes(campaigns, providerHandler)
			campaigns.GET("/export", middleware.RequireStaff(), excelHandler.ExportCampaign)
		}
	}

	registerRedirectRoute(root, redirectHandler)

	pages := root.Group("/campaigns")
	pages.Use(middleware.CacheAnonymousPage(pageCache))
	{
		pages.GET("/", campaignHandler.Index)
		pages.GET("/:slug/", campaignHandler.Page)
	}

	plugins := root.Group("/plugins")
	{
		plugins.GET("/map/:id", pluginHandler.Map)
		plugins.GET("/list/:id", pluginHandler.List)
		plugins.GET("/requests/:id", pluginHandler.Requests)
		plugins.GET("/questionnaire/:id", pluginHandler.Questionnaire)
	}

	return r
}

// newEngine matches routes on the escaped path, so an ident containing a
// slash stays one path parameter
func newEngine() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	return r
}

// registerProviderRoutes mounts search and detail below a campaign group.
// Detail has its own segment so no ident collides with search.
func registerProviderRoutes(campaigns *gin.RouterGroup, h *handlers.ProviderHandler) {
	campaigns.GET("/provider/search", h.Search)
	campaigns.GET("/provider/detail/:ident", h.Detail)
}

func registerRedirectRoute(root *gin.RouterGroup, h *handlers.RedirectHandler) {
	root.GET("/campaign/:campaign_id/:ident/request/", h.RequestRedirect)
}
