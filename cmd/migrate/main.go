package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/researchgraph-backend/internal/migrate"
	"github.com/yungbote/researchgraph-backend/internal/platform/envutil"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/platform/neo4jdb"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("init neo4j client", "error", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	dir := envutil.Str("MIGRATIONS_DIR", "migrations")
	if err := migrate.Run(ctx, client, log, dir); err != nil {
		log.Fatal("migrations failed", "error", err)
	}
}
