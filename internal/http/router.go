package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/researchgraph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/researchgraph-backend/internal/http/middleware"
)

type RouterConfig struct {
	HealthHandler *httpH.HealthHandler
	PaperHandler  *httpH.PaperHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.AttachRequestID())
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.PaperHandler != nil {
			api.POST("/papers/ingest", cfg.PaperHandler.Ingest)
			api.POST("/papers/upload", cfg.PaperHandler.Upload)
			api.GET("/papers", cfg.PaperHandler.ListPapers)
			api.GET("/papers/:title", cfg.PaperHandler.GetPaper)
			api.GET("/papers/:title/related", cfg.PaperHandler.FindRelated)
		}
	}

	return r
}
