package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/researchgraph-backend/internal/data/graph"
	"github.com/yungbote/researchgraph-backend/internal/extract"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
)

// IngestInput is one paper's worth of extracted entities plus optional
// concept lists supplied by the caller.
type IngestInput struct {
	JobID     string
	Title     string
	Authors   []string
	Citations []string
	FullText  string
	Methods   []string
	Datasets  []string
	Tasks     []string
}

// IngestResult reports what actually landed in the graph. Counters reflect
// only affirmed links; the composite operation is not transactional.
type IngestResult struct {
	Paper            *graph.PaperNode `json:"paper"`
	AuthorsLinked    int              `json:"authors_linked"`
	CitationsCreated int              `json:"citations_created"`
	MethodsLinked    int              `json:"methods_linked"`
	DatasetsLinked   int              `json:"datasets_linked"`
	TasksLinked      int              `json:"tasks_linked"`
}

// GraphOutcome carries either the persisted ingest result or the captured
// failure. Graph persistence after a successful extraction is best-effort:
// the error rides along on the response instead of aborting it.
type GraphOutcome struct {
	Result *IngestResult `json:"result,omitempty"`
	Err    error         `json:"-"`
}

type IngestService interface {
	// IngestPaper persists one paper and its relationships. A paper upsert
	// failure aborts; any later per-item failure is logged, counted as zero
	// and does not stop the remaining items.
	IngestPaper(ctx context.Context, in IngestInput) (*IngestResult, error)

	// ProcessDocument extracts metadata from a TEI document and then
	// ingests it. Extraction never fails; the graph outcome is captured,
	// not thrown.
	ProcessDocument(ctx context.Context, jobID string, doc []byte, methods, datasets, tasks []string) (extract.Metadata, GraphOutcome)
}

type ingestService struct {
	graph PaperGraph
	log   *logger.Logger
}

func NewIngestService(g PaperGraph, log *logger.Logger) IngestService {
	return &ingestService{graph: g, log: log.With("service", "Ingest")}
}

func (s *ingestService) IngestPaper(ctx context.Context, in IngestInput) (*IngestResult, error) {
	paper, err := s.graph.UpsertPaper(ctx, in.Title, graph.PaperCreateFields{
		FullText: in.FullText,
		JobID:    in.JobID,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: upsert paper: %w", err)
	}
	result := &IngestResult{Paper: paper}

	for _, name := range distinctNonBlank(in.Authors) {
		if _, err := s.graph.UpsertAuthor(ctx, name, ""); err != nil {
			s.log.Warn("author upsert failed (continuing)", "author", name, "job_id", in.JobID, "error", err)
			continue
		}
		linked, err := s.graph.LinkAuthored(ctx, name, in.Title)
		if err != nil {
			s.log.Warn("author link failed (continuing)", "author", name, "job_id", in.JobID, "error", err)
			continue
		}
		if linked {
			result.AuthorsLinked++
		}
	}

	for _, cited := range distinctNonBlank(in.Citations) {
		linked, err := s.graph.LinkCitation(ctx, in.Title, cited)
		if err != nil {
			s.log.Warn("citation link failed (continuing)", "cited", cited, "job_id", in.JobID, "error", err)
			continue
		}
		if linked {
			result.CitationsCreated++
		}
	}

	for _, name := range distinctNonBlank(in.Methods) {
		if _, err := s.graph.UpsertMethod(ctx, name, ""); err != nil {
			s.log.Warn("method upsert failed (continuing)", "method", name, "job_id", in.JobID, "error", err)
			continue
		}
		linked, err := s.graph.LinkUsesMethod(ctx, in.Title, name)
		if err != nil {
			s.log.Warn("method link failed (continuing)", "method", name, "job_id", in.JobID, "error", err)
			continue
		}
		if linked {
			result.MethodsLinked++
		}
	}

	for _, name := range distinctNonBlank(in.Datasets) {
		if _, err := s.graph.UpsertDataset(ctx, name, ""); err != nil {
			s.log.Warn("dataset upsert failed (continuing)", "dataset", name, "job_id", in.JobID, "error", err)
			continue
		}
		linked, err := s.graph.LinkUsesDataset(ctx, in.Title, name)
		if err != nil {
			s.log.Warn("dataset link failed (continuing)", "dataset", name, "job_id", in.JobID, "error", err)
			continue
		}
		if linked {
			result.DatasetsLinked++
		}
	}

	for _, name := range distinctNonBlank(in.Tasks) {
		if _, err := s.graph.UpsertTask(ctx, name, ""); err != nil {
			s.log.Warn("task upsert failed (continuing)", "task", name, "job_id", in.JobID, "error", err)
			continue
		}
		linked, err := s.graph.LinkAddressesTask(ctx, in.Title, name)
		if err != nil {
			s.log.Warn("task link failed (continuing)", "task", name, "job_id", in.JobID, "error", err)
			continue
		}
		if linked {
			result.TasksLinked++
		}
	}

	s.log.Info("paper ingested",
		"job_id", in.JobID,
		"title", in.Title,
		"authors_linked", result.AuthorsLinked,
		"citations_created", result.CitationsCreated,
	)
	return result, nil
}

func (s *ingestService) ProcessDocument(ctx context.Context, jobID string, doc []byte, methods, datasets, tasks []string) (extract.Metadata, GraphOutcome) {
	meta := extract.Extract(doc)

	result, err := s.IngestPaper(ctx, IngestInput{
		JobID:     jobID,
		Title:     meta.Title,
		Authors:   meta.Authors,
		Citations: meta.Citations,
		FullText:  string(doc),
		Methods:   methods,
		Datasets:  datasets,
		Tasks:     tasks,
	})
	if err != nil {
		s.log.Error("graph persistence failed after extraction", "job_id", jobID, "title", meta.Title, "error", err)
		return meta, GraphOutcome{Err: err}
	}
	return meta, GraphOutcome{Result: result}
}

// distinctNonBlank trims each entry, drops blanks and collapses duplicates
// while preserving first-seen order, so re-listed entities cannot inflate the
// result counters.
func distinctNonBlank(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, raw := range items {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
