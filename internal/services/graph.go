package services

import (
	"context"

	"github.com/yungbote/researchgraph-backend/internal/data/graph"
)

// PaperGraph is the slice of the graph repository the services depend on.
// *graph.Repo satisfies it; tests substitute a fake.
type PaperGraph interface {
	UpsertPaper(ctx context.Context, title string, fields graph.PaperCreateFields) (*graph.PaperNode, error)
	UpsertAuthor(ctx context.Context, name, affiliation string) (*graph.AuthorNode, error)
	UpsertMethod(ctx context.Context, name, description string) (*graph.NamedNode, error)
	UpsertDataset(ctx context.Context, name, description string) (*graph.NamedNode, error)
	UpsertTask(ctx context.Context, name, description string) (*graph.NamedNode, error)

	LinkAuthored(ctx context.Context, authorName, paperTitle string) (bool, error)
	LinkCitation(ctx context.Context, citingTitle, citedTitle string) (bool, error)
	LinkUsesMethod(ctx context.Context, paperTitle, methodName string) (bool, error)
	LinkUsesDataset(ctx context.Context, paperTitle, datasetName string) (bool, error)
	LinkAddressesTask(ctx context.Context, paperTitle, taskName string) (bool, error)

	GetPaperByTitle(ctx context.Context, title string) (*graph.PaperDetail, error)
	ListPapers(ctx context.Context, limit int) ([]graph.PaperSummary, error)
	FindRelatedPapers(ctx context.Context, title string) ([]graph.PaperRef, error)
}
