package app

import (
	httpH "github.com/yungbote/researchgraph-backend/internal/http/handlers"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Paper  *httpH.PaperHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(clients.Neo4j),
		Paper:  httpH.NewPaperHandler(log, services.Ingest, services.Papers, clients.Marker),
	}
}
