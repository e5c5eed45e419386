package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GetPaperByTitle looks up a paper by exact title and expands one hop across
// all five relationship types. A missing title is (nil, nil), not an error.
func (r *Repo) GetPaperByTitle(ctx context.Context, title string) (*PaperDetail, error) {
	const cypher = `
MATCH (p:Paper {title: $title})
OPTIONAL MATCH (a:Author)-[:AUTHORED]->(p)
OPTIONAL MATCH (p)-[:CITES]->(cited:Paper)
OPTIONAL MATCH (p)-[:USES_METHOD]->(m:Method)
OPTIONAL MATCH (p)-[:USES_DATASET]->(d:Dataset)
OPTIONAL MATCH (p)-[:ADDRESSES_TASK]->(t:Task)
RETURN p,
       collect(DISTINCT a.name) AS authors,
       collect(DISTINCT cited.title) AS citations,
       collect(DISTINCT m.name) AS methods,
       collect(DISTINCT d.name) AS datasets,
       collect(DISTINCT t.name) AS tasks
`
	session, err := r.client.Session(ctx, neo4j.AccessModeRead)
	if err != nil {
		return nil, fmt.Errorf("graph: get paper: %w", err)
	}
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"title": title})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return (*PaperDetail)(nil), nil
		}
		rec := res.Record()
		val, ok := rec.Get("p")
		if !ok {
			return nil, fmt.Errorf("missing paper in result")
		}
		node, ok := val.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected type %T for paper", val)
		}
		detail := &PaperDetail{PaperNode: *paperFromNode(node)}
		detail.Authors = collectedList(rec, "authors")
		detail.Citations = collectedList(rec, "citations")
		detail.Methods = collectedList(rec, "methods")
		detail.Datasets = collectedList(rec, "datasets")
		detail.Tasks = collectedList(rec, "tasks")
		return detail, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: get paper: %w", err)
	}
	return out.(*PaperDetail), nil
}

// ListPapers returns up to limit papers, newest first, each with its author
// names attached.
func (r *Repo) ListPapers(ctx context.Context, limit int) ([]PaperSummary, error) {
	const cypher = `
MATCH (p:Paper)
OPTIONAL MATCH (a:Author)-[:AUTHORED]->(p)
RETURN p.title AS title, p.job_id AS job_id,
       collect(DISTINCT a.name) AS authors
ORDER BY p.created_at DESC
LIMIT $limit
`
	session, err := r.client.Session(ctx, neo4j.AccessModeRead)
	if err != nil {
		return nil, fmt.Errorf("graph: list papers: %w", err)
	}
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"limit": int64(limit)})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		summaries := make([]PaperSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, PaperSummary{
				Title:   recordString(rec, "title"),
				JobID:   recordString(rec, "job_id"),
				Authors: collectedList(rec, "authors"),
			})
		}
		return summaries, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: list papers: %w", err)
	}
	return out.([]PaperSummary), nil
}

// FindRelatedPapers unions papers sharing an author, papers sharing a method,
// cited papers and citing papers, excluding the queried title, capped at 20.
// Order is store traversal order; no ranking is implied.
func (r *Repo) FindRelatedPapers(ctx context.Context, title string) ([]PaperRef, error) {
	const cypher = `
MATCH (p:Paper {title: $title})
OPTIONAL MATCH (p)<-[:AUTHORED]-(a:Author)-[:AUTHORED]->(related:Paper)
WHERE related.title <> $title
OPTIONAL MATCH (p)-[:USES_METHOD]->(m:Method)<-[:USES_METHOD]-(method_related:Paper)
WHERE method_related.title <> $title
OPTIONAL MATCH (p)-[:CITES]->(cited:Paper)
OPTIONAL MATCH (citing:Paper)-[:CITES]->(p)
WITH collect(DISTINCT related) + collect(DISTINCT method_related) +
     collect(DISTINCT cited) + collect(DISTINCT citing) AS all_related
UNWIND all_related AS r
RETURN DISTINCT r.title AS title, r.job_id AS job_id
LIMIT 20
`
	session, err := r.client.Session(ctx, neo4j.AccessModeRead)
	if err != nil {
		return nil, fmt.Errorf("graph: find related: %w", err)
	}
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"title": title})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		refs := make([]PaperRef, 0, len(records))
		for _, rec := range records {
			ref := PaperRef{
				Title: recordString(rec, "title"),
				JobID: recordString(rec, "job_id"),
			}
			if ref.Title == "" {
				continue
			}
			refs = append(refs, ref)
		}
		return refs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: find related: %w", err)
	}
	return out.([]PaperRef), nil
}

func collectedList(rec *neo4j.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok {
		return []string{}
	}
	return stringList(v)
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
