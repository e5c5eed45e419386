package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/researchgraph-backend/internal/http"
)

func wireRouter(handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		HealthHandler: handlers.Health,
		PaperHandler:  handlers.Paper,
	})
}
