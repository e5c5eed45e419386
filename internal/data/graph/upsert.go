package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/platform/neo4jdb"
)

// Repo issues every upsert and query against the shared Neo4j client. Each
// exported call runs as its own write or read transaction; idempotence is
// delegated to the store's uniqueness constraints plus MERGE semantics, so
// concurrent upserts of the same key converge to one node.
type Repo struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewRepo(client *neo4jdb.Client, log *logger.Logger) *Repo {
	return &Repo{client: client, log: log.With("repo", "PaperGraph")}
}

// UpsertPaper merges the Paper keyed by title. Create-only fields are never
// overwritten: a repeat upsert only refreshes updated_at, while a placeholder
// left behind by a citation gets its absent fields filled in on the first
// direct ingest (coalesce keeps whatever is already set).
func (r *Repo) UpsertPaper(ctx context.Context, title string, fields PaperCreateFields) (*PaperNode, error) {
	const cypher = `
MERGE (p:Paper {title: $title})
ON CREATE SET
    p.abstract = $abstract,
    p.year = $year,
    p.venue = $venue,
    p.full_text = $full_text,
    p.job_id = $job_id,
    p.created_at = datetime()
ON MATCH SET
    p.abstract = coalesce(p.abstract, $abstract),
    p.year = coalesce(p.year, $year),
    p.venue = coalesce(p.venue, $venue),
    p.full_text = coalesce(p.full_text, $full_text),
    p.job_id = coalesce(p.job_id, $job_id),
    p.updated_at = datetime()
RETURN p
`
	params := map[string]any{
		"title":     title,
		"abstract":  nilIfEmpty(fields.Abstract),
		"year":      nilIfZero(fields.Year),
		"venue":     nilIfEmpty(fields.Venue),
		"full_text": nilIfEmpty(fields.FullText),
		"job_id":    nilIfEmpty(fields.JobID),
	}
	node, err := r.writeSingleNode(ctx, cypher, params, "p")
	if err != nil {
		return nil, fmt.Errorf("graph: upsert paper: %w", err)
	}
	return paperFromNode(node), nil
}

func (r *Repo) UpsertAuthor(ctx context.Context, name, affiliation string) (*AuthorNode, error) {
	const cypher = `
MERGE (a:Author {name: $name})
ON CREATE SET
    a.affiliation = $affiliation,
    a.created_at = datetime()
RETURN a
`
	node, err := r.writeSingleNode(ctx, cypher, map[string]any{
		"name":        name,
		"affiliation": nilIfEmpty(affiliation),
	}, "a")
	if err != nil {
		return nil, fmt.Errorf("graph: upsert author: %w", err)
	}
	return authorFromNode(node), nil
}

func (r *Repo) UpsertMethod(ctx context.Context, name, description string) (*NamedNode, error) {
	const cypher = `
MERGE (m:Method {name: $name})
ON CREATE SET m.description = $description
RETURN m
`
	node, err := r.writeSingleNode(ctx, cypher, map[string]any{
		"name":        name,
		"description": nilIfEmpty(description),
	}, "m")
	if err != nil {
		return nil, fmt.Errorf("graph: upsert method: %w", err)
	}
	return namedFromNode(node), nil
}

func (r *Repo) UpsertDataset(ctx context.Context, name, description string) (*NamedNode, error) {
	const cypher = `
MERGE (d:Dataset {name: $name})
ON CREATE SET d.description = $description
RETURN d
`
	node, err := r.writeSingleNode(ctx, cypher, map[string]any{
		"name":        name,
		"description": nilIfEmpty(description),
	}, "d")
	if err != nil {
		return nil, fmt.Errorf("graph: upsert dataset: %w", err)
	}
	return namedFromNode(node), nil
}

func (r *Repo) UpsertTask(ctx context.Context, name, description string) (*NamedNode, error) {
	const cypher = `
MERGE (t:Task {name: $name})
ON CREATE SET t.description = $description
RETURN t
`
	node, err := r.writeSingleNode(ctx, cypher, map[string]any{
		"name":        name,
		"description": nilIfEmpty(description),
	}, "t")
	if err != nil {
		return nil, fmt.Errorf("graph: upsert task: %w", err)
	}
	return namedFromNode(node), nil
}

// LinkAuthored merges the AUTHORED edge. True means the edge now exists;
// false without error means an endpoint is missing.
func (r *Repo) LinkAuthored(ctx context.Context, authorName, paperTitle string) (bool, error) {
	const cypher = `
MATCH (a:Author {name: $author_name})
MATCH (p:Paper {title: $paper_title})
MERGE (a)-[r:AUTHORED]->(p)
RETURN r
`
	return r.mergeRelationship(ctx, cypher, map[string]any{
		"author_name": authorName,
		"paper_title": paperTitle,
	})
}

// LinkCitation guarantees the cited Paper exists (as a placeholder when it
// was never directly ingested) before merging the CITES edge, so a citation
// can never dangle.
func (r *Repo) LinkCitation(ctx context.Context, citingTitle, citedTitle string) (bool, error) {
	session, err := r.client.Session(ctx, neo4j.AccessModeWrite)
	if err != nil {
		return false, fmt.Errorf("graph: link citation: %w", err)
	}
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MERGE (p:Paper {title: $cited_title})`, map[string]any{
			"cited_title": citedTitle,
		})
		if err != nil {
			return false, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return false, err
		}

		res, err = tx.Run(ctx, `
MATCH (citing:Paper {title: $citing_title})
MATCH (cited:Paper {title: $cited_title})
MERGE (citing)-[r:CITES]->(cited)
RETURN r
`, map[string]any{
			"citing_title": citingTitle,
			"cited_title":  citedTitle,
		})
		if err != nil {
			return false, err
		}
		found := res.Next(ctx)
		if err := res.Err(); err != nil {
			return false, err
		}
		return found, nil
	})
	if err != nil {
		return false, fmt.Errorf("graph: link citation: %w", err)
	}
	return out.(bool), nil
}

func (r *Repo) LinkUsesMethod(ctx context.Context, paperTitle, methodName string) (bool, error) {
	const cypher = `
MATCH (p:Paper {title: $paper_title})
MATCH (m:Method {name: $method_name})
MERGE (p)-[r:USES_METHOD]->(m)
RETURN r
`
	return r.mergeRelationship(ctx, cypher, map[string]any{
		"paper_title": paperTitle,
		"method_name": methodName,
	})
}

func (r *Repo) LinkUsesDataset(ctx context.Context, paperTitle, datasetName string) (bool, error) {
	const cypher = `
MATCH (p:Paper {title: $paper_title})
MATCH (d:Dataset {name: $dataset_name})
MERGE (p)-[r:USES_DATASET]->(d)
RETURN r
`
	return r.mergeRelationship(ctx, cypher, map[string]any{
		"paper_title":  paperTitle,
		"dataset_name": datasetName,
	})
}

func (r *Repo) LinkAddressesTask(ctx context.Context, paperTitle, taskName string) (bool, error) {
	const cypher = `
MATCH (p:Paper {title: $paper_title})
MATCH (t:Task {name: $task_name})
MERGE (p)-[r:ADDRESSES_TASK]->(t)
RETURN r
`
	return r.mergeRelationship(ctx, cypher, map[string]any{
		"paper_title": paperTitle,
		"task_name":   taskName,
	})
}

func (r *Repo) writeSingleNode(ctx context.Context, cypher string, params map[string]any, alias string) (neo4j.Node, error) {
	session, err := r.client.Session(ctx, neo4j.AccessModeWrite)
	if err != nil {
		return neo4j.Node{}, err
	}
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("no record returned for %q", alias)
		}
		rec := res.Record()
		val, ok := rec.Get(alias)
		if !ok {
			return nil, fmt.Errorf("missing %q in result", alias)
		}
		node, ok := val.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected type %T for %q", val, alias)
		}
		return node, nil
	})
	if err != nil {
		return neo4j.Node{}, err
	}
	return out.(neo4j.Node), nil
}

// mergeRelationship runs a MATCH endpoints + MERGE edge statement. A missing
// endpoint yields zero rows, reported as (false, nil) rather than an error.
func (r *Repo) mergeRelationship(ctx context.Context, cypher string, params map[string]any) (bool, error) {
	session, err := r.client.Session(ctx, neo4j.AccessModeWrite)
	if err != nil {
		return false, fmt.Errorf("graph: merge relationship: %w", err)
	}
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return false, err
		}
		found := res.Next(ctx)
		if err := res.Err(); err != nil {
			return false, err
		}
		return found, nil
	})
	if err != nil {
		return false, fmt.Errorf("graph: merge relationship: %w", err)
	}
	return out.(bool), nil
}
