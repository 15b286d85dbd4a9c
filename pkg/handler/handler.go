package handler

import (
	"embed"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"

	"millionaire_level/pkg/middleware"
	"millionaire_level/pkg/service"
	"millionaire_level/pkg/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Config struct {
	AllowOrigins []string
	// nil отключает ограничение запросов
	Limiter *limiter.Limiter
	// шаг поля ввода суммы на странице
	WealthStep float64
}

type Handler struct {
	service   *service.Service
	cfg       Config
	templates *template.Template
}

func NewHandler(service *service.Service, cfg Config) *Handler {
	if cfg.WealthStep <= 0 {
		cfg.WealthStep = 1000
	}
	return &Handler{
		service:   service,
		cfg:       cfg,
		templates: parseTemplates(),
	}
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"amount": utils.FormatAmount,
		"delta":  utils.FormatDelta,
	}).ParseFS(templatesFS, "templates/*.html"))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(corsConfig(h.cfg.AllowOrigins)))
	router.SetHTMLTemplate(h.templates)

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("/", middleware.RateLimit(h.cfg.Limiter))
	{
		limited.GET("/", h.Index)

		api := limited.Group("/api")
		{
			api.GET("/wealth", h.GetWealth)
			api.GET("/currencies", h.GetCurrencies)
			api.POST("/convert", h.Convert)
		}
	}
	return router
}
