package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/researchgraph-backend/internal/http/response"
	"github.com/yungbote/researchgraph-backend/internal/platform/neo4jdb"
)

type HealthHandler struct {
	graph *neo4jdb.Client
}

func NewHealthHandler(graph *neo4jdb.Client) *HealthHandler {
	return &HealthHandler{graph: graph}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":          "ok",
		"graph_connected": h.graph.Verify(c.Request.Context()),
	})
}
