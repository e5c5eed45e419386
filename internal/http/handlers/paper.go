package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/researchgraph-backend/internal/clients/marker"
	"github.com/yungbote/researchgraph-backend/internal/http/response"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
	"github.com/yungbote/researchgraph-backend/internal/services"
)

type PaperHandler struct {
	log       *logger.Logger
	ingest    services.IngestService
	papers    services.PaperService
	converter marker.Client
}

func NewPaperHandler(log *logger.Logger, ingest services.IngestService, papers services.PaperService, converter marker.Client) *PaperHandler {
	return &PaperHandler{
		log:       log.With("handler", "Paper"),
		ingest:    ingest,
		papers:    papers,
		converter: converter,
	}
}

type ingestRequest struct {
	Document string   `json:"document" binding:"required"`
	Methods  []string `json:"methods"`
	Datasets []string `json:"datasets"`
	Tasks    []string `json:"tasks"`
}

// POST /api/papers/ingest
//
// Extraction always succeeds; when graph persistence fails afterwards the
// captured error is attached to the 200 response instead of replacing it.
func (h *PaperHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	jobID := "job-" + uuid.NewString()
	meta, outcome := h.ingest.ProcessDocument(c.Request.Context(), jobID, []byte(req.Document), req.Methods, req.Datasets, req.Tasks)

	resp := gin.H{
		"job_id":   jobID,
		"metadata": meta,
	}
	if outcome.Err != nil {
		resp["graph_error"] = outcome.Err.Error()
	} else {
		resp["ingest"] = outcome.Result
	}
	response.RespondOK(c, resp)
}

// POST /api/papers/upload
func (h *PaperHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		response.RespondError(c, http.StatusBadRequest, "invalid_file_type", fmt.Errorf("file must be a PDF"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()
	pdf, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	result, err := h.converter.Convert(c.Request.Context(), fileHeader.Filename, pdf)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "conversion_failed", err)
		return
	}

	jobID := "job-" + uuid.NewString()
	h.log.Info("pdf converted", "job_id", jobID, "filename", fileHeader.Filename, "markdown_bytes", len(result.Markdown))
	response.RespondOK(c, gin.H{
		"job_id":   jobID,
		"markdown": result.Markdown,
		"metadata": result.Metadata,
	})
}

// GET /api/papers?limit=N
func (h *PaperHandler) ListPapers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", fmt.Errorf("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	papers, err := h.papers.List(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "graph_unavailable", err)
		return
	}
	response.RespondOK(c, gin.H{"papers": papers, "count": len(papers)})
}

// GET /api/papers/:title
func (h *PaperHandler) GetPaper(c *gin.Context) {
	title := c.Param("title")
	detail, err := h.papers.GetByTitle(c.Request.Context(), title)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "graph_unavailable", err)
		return
	}
	if detail == nil {
		response.RespondError(c, http.StatusNotFound, "paper_not_found", fmt.Errorf("no paper with title %q", title))
		return
	}
	response.RespondOK(c, gin.H{"paper": detail})
}

// GET /api/papers/:title/related
func (h *PaperHandler) FindRelated(c *gin.Context) {
	title := c.Param("title")
	related, err := h.papers.Related(c.Request.Context(), title)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "graph_unavailable", err)
		return
	}
	response.RespondOK(c, gin.H{"related": related, "count": len(related)})
}
