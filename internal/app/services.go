package app

import (
	"github.com/yungbote/researchgraph-backend/internal/data/graph"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/services"
)

type Services struct {
	Ingest services.IngestService
	Papers services.PaperService
}

func wireServices(log *logger.Logger, clients Clients) Services {
	log.Info("Wiring services...")

	repo := graph.NewRepo(clients.Neo4j, log)

	return Services{
		Ingest: services.NewIngestService(repo, log),
		Papers: services.NewPaperService(repo, log),
	}
}
