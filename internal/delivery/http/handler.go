package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"opsdash/internal/service"

	_ "opsdash/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	svc service.Assignment
}

func NewHandler(s service.Assignment) *Handler {
	return &Handler{svc: s}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/assignment/:oid", h.LoadSession)
		api.GET("/assignment/:oid/summary", h.Summary)
		api.POST("/assignment/:oid/rows", h.AddSubRange)
		api.DELETE("/assignment/:oid/rows/:rid", h.RemoveSubRange)
		api.PUT("/assignment/:oid/rows/:rid/ct", h.SetCTRange)
		api.PUT("/assignment/:oid/rows/:rid/driver", h.SetDriver)
		api.PUT("/assignment/:oid/rows/:rid/airport", h.SetAirport)
		api.PUT("/assignment/:oid/rows/:rid/status", h.SetStatus)
		api.POST("/assignment/:oid/submit", h.Submit)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
