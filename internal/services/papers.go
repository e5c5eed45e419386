package services

import (
	"context"
	"fmt"

	"github.com/yungbote/researchgraph-backend/internal/data/graph"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
)

const defaultListLimit = 100

type PaperService interface {
	// GetByTitle returns (nil, nil) when no paper matches.
	GetByTitle(ctx context.Context, title string) (*graph.PaperDetail, error)
	List(ctx context.Context, limit int) ([]graph.PaperSummary, error)
	// Related returns at most 20 distinct papers; ordering is unspecified.
	Related(ctx context.Context, title string) ([]graph.PaperRef, error)
}

type paperService struct {
	graph PaperGraph
	log   *logger.Logger
}

func NewPaperService(g PaperGraph, log *logger.Logger) PaperService {
	return &paperService{graph: g, log: log.With("service", "Papers")}
}

func (s *paperService) GetByTitle(ctx context.Context, title string) (*graph.PaperDetail, error) {
	detail, err := s.graph.GetPaperByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("papers: get by title: %w", err)
	}
	return detail, nil
}

func (s *paperService) List(ctx context.Context, limit int) ([]graph.PaperSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	summaries, err := s.graph.ListPapers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("papers: list: %w", err)
	}
	return summaries, nil
}

func (s *paperService) Related(ctx context.Context, title string) ([]graph.PaperRef, error) {
	refs, err := s.graph.FindRelatedPapers(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("papers: related: %w", err)
	}
	return refs, nil
}
