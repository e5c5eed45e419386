package app

import (
	"context"
	"fmt"

	"github.com/yungbote/researchgraph-backend/internal/clients/marker"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/platform/neo4jdb"
)

type Clients struct {
	Neo4j  *neo4jdb.Client
	Marker marker.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init neo4j client: %w", err)
	}

	converter, err := marker.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init marker client: %w", err)
	}

	return Clients{
		Neo4j:  neo,
		Marker: converter,
	}, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
}
