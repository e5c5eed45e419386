package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/platform/neo4jdb"
)

// Run applies every .cypher file in dir in lexical order. Each statement runs
// on its own; failures (typically "constraint already exists") are logged and
// skipped so the runner stays idempotent.
func Run(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, dir string) error {
	if !client.Verify(ctx) {
		return fmt.Errorf("migrate: cannot connect to graph store")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.cypher"))
	if err != nil {
		return fmt.Errorf("migrate: list migrations: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Info("no migration files found", "dir", dir)
		return nil
	}
	log.Info("applying migrations", "count", len(files))

	session, err := client.Session(ctx, neo4j.AccessModeWrite)
	if err != nil {
		return fmt.Errorf("migrate: open session: %w", err)
	}
	defer session.Close(ctx)

	for _, path := range files {
		name := filepath.Base(path)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("migrate: read %s: %w", name, err)
		}
		log.Info("running migration", "file", name)

		for _, stmt := range SplitStatements(string(content)) {
			if res, err := session.Run(ctx, stmt, nil); err != nil {
				log.Warn("migration statement failed (continuing)", "file", name, "statement", stmt, "error", err)
			} else {
				_, _ = res.Consume(ctx)
			}
		}
	}

	log.Info("migrations complete")
	return nil
}

// SplitStatements breaks a .cypher file into individual statements: split on
// semicolons, drop // comment lines and blank lines, collapse the rest onto
// one line.
func SplitStatements(content string) []string {
	var statements []string
	for _, chunk := range strings.Split(content, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, " "))
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
