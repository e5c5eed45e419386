package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/researchgraph-backend/internal/clients/marker"
	"github.com/yungbote/researchgraph-backend/internal/data/graph"
	"github.com/yungbote/researchgraph-backend/internal/extract"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/services"
)

type fakeIngest struct {
	outcome services.GraphOutcome
}

func (f *fakeIngest) IngestPaper(context.Context, services.IngestInput) (*services.IngestResult, error) {
	return f.outcome.Result, f.outcome.Err
}

func (f *fakeIngest) ProcessDocument(_ context.Context, _ string, doc []byte, _, _, _ []string) (extract.Metadata, services.GraphOutcome) {
	return extract.Extract(doc), f.outcome
}

type fakePapers struct {
	detail *graph.PaperDetail
	err    error
}

func (f *fakePapers) GetByTitle(context.Context, string) (*graph.PaperDetail, error) {
	return f.detail, f.err
}

func (f *fakePapers) List(context.Context, int) ([]graph.PaperSummary, error) {
	return nil, f.err
}

func (f *fakePapers) Related(context.Context, string) ([]graph.PaperRef, error) {
	return nil, f.err
}

type fakeConverter struct{}

func (fakeConverter) Convert(context.Context, string, []byte) (*marker.ConversionResult, error) {
	return &marker.ConversionResult{Markdown: "# converted"}, nil
}

func (fakeConverter) Health(context.Context) bool { return true }

func newTestRouter(t *testing.T, ingest services.IngestService, papers services.PaperService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	h := NewPaperHandler(log, ingest, papers, fakeConverter{})
	r := gin.New()
	r.POST("/api/papers/ingest", h.Ingest)
	r.GET("/api/papers", h.ListPapers)
	r.GET("/api/papers/:title", h.GetPaper)
	r.GET("/api/papers/:title/related", h.FindRelated)
	return r
}

func TestIngestRespondsWithResult(t *testing.T) {
	ingest := &fakeIngest{outcome: services.GraphOutcome{
		Result: &services.IngestResult{
			Paper:         &graph.PaperNode{Title: "T"},
			AuthorsLinked: 2,
		},
	}}
	r := newTestRouter(t, ingest, &fakePapers{})

	body := `{"document": "<TEI><teiHeader><fileDesc><titleStmt><title>T</title></titleStmt></fileDesc></teiHeader></TEI>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/papers/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	jobID, _ := resp["job_id"].(string)
	if !strings.HasPrefix(jobID, "job-") {
		t.Fatalf("job_id = %q", jobID)
	}
	if _, ok := resp["graph_error"]; ok {
		t.Fatalf("unexpected graph_error in %v", resp)
	}
	if _, ok := resp["ingest"]; !ok {
		t.Fatalf("missing ingest result in %v", resp)
	}
}

func TestIngestAttachesGraphErrorOnPersistFailure(t *testing.T) {
	ingest := &fakeIngest{outcome: services.GraphOutcome{Err: errors.New("store unreachable")}}
	r := newTestRouter(t, ingest, &fakePapers{})

	body := `{"document": "<TEI><teiHeader><fileDesc><titleStmt><title>T</title></titleStmt></fileDesc></teiHeader></TEI>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/papers/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("extraction succeeded, status should stay 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["graph_error"] != "store unreachable" {
		t.Fatalf("graph_error = %v", resp["graph_error"])
	}
	meta, _ := resp["metadata"].(map[string]any)
	if meta["title"] != "T" {
		t.Fatalf("metadata = %v", meta)
	}
}

func TestIngestRejectsMissingDocument(t *testing.T) {
	r := newTestRouter(t, &fakeIngest{}, &fakePapers{})

	req := httptest.NewRequest(http.MethodPost, "/api/papers/ingest", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetPaperNotFound(t *testing.T) {
	r := newTestRouter(t, &fakeIngest{}, &fakePapers{})

	req := httptest.NewRequest(http.MethodGet, "/api/papers/Missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetPaperConnectivityFailure(t *testing.T) {
	r := newTestRouter(t, &fakeIngest{}, &fakePapers{err: errors.New("store unreachable")})

	req := httptest.NewRequest(http.MethodGet, "/api/papers/Any", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestListPapersRejectsBadLimit(t *testing.T) {
	r := newTestRouter(t, &fakeIngest{}, &fakePapers{})

	req := httptest.NewRequest(http.MethodGet, "/api/papers?limit=abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
