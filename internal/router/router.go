package router

import (
	"net/http"

	docs "github.com/cashlog/backend/api"
	"github.com/cashlog/backend/internal/config"
	"github.com/cashlog/backend/internal/controllers/healthz"
	"github.com/cashlog/backend/internal/controllers/root"
	v1 "github.com/cashlog/backend/internal/controllers/v1"
	"github.com/cashlog/backend/internal/controllers/version"
	"github.com/cashlog/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags "-X github.com/cashlog/backend/internal/router.buildVersion=…".
var buildVersion = "0.0.0"

// Config sets up the router with all middlewares.
//
// The returned function unregisters the Prometheus metrics and must be
// called when the router is not used anymore.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "this HTTP method is not allowed for the endpoint you called"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "there is no endpoint at this path"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}
	r.Use(MetricsMiddleware())

	teardown := func() {
		unregisterPrometheusMetrics()
	}

	// CORS settings
	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", cfg.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	if err := httputil.RegisterValidations(); err != nil {
		teardown()
		return nil, func() {}, err
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.Register(r, "debug/pprof")
	}

	log.Debug().Str("API Base URL", cfg.APIURL.String()).Str("Host", cfg.APIURL.Host).Str("Path", cfg.APIURL.Path).Msg("Router")
	log.Info().Str("version", buildVersion).Msg("Router")

	docs.SwaggerInfo.Host = cfg.APIURL.Host
	docs.SwaggerInfo.BasePath = cfg.APIURL.Path
	docs.SwaggerInfo.Title = "cashlog"
	docs.SwaggerInfo.Version = buildVersion
	docs.SwaggerInfo.Description = "The backend for cashlog, a personal ledger with monthly budgets and spending alerts."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(group *gin.RouterGroup) {
	// Unversioned global endpoints
	{
		root.RegisterRoutes(group.Group(""))
		healthz.RegisterRoutes(group.Group("/healthz"))
		version.RegisterRoutes(group.Group("/version"), buildVersion)
		group.GET("/metrics", gin.WrapH(promhttp.Handler()))
		group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// v1
	{
		v1Group := group.Group("/v1")
		v1.RegisterRootRoutes(v1Group.Group(""))
		v1.RegisterCategoryRoutes(v1Group.Group("/categories"))
		v1.RegisterTagRoutes(v1Group.Group("/tags"))
		v1.RegisterBudgetRoutes(v1Group.Group("/budgets"))
		v1.RegisterTransactionRoutes(v1Group.Group("/transactions"))
		v1.RegisterMonthRoutes(v1Group.Group("/months"))
		v1.RegisterCategoryBreakdownRoutes(v1Group.Group("/category-breakdown"))
		v1.RegisterExportRoutes(v1Group.Group("/export"))
		v1.RegisterSessionRoutes(v1Group.Group("/sessions"))
	}
}
