package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"fairlens/app"
	"fairlens/domain/core"
	"fairlens/domain/table"
	"fairlens/internal"
	"fairlens/ports"
)

// Server exposes the audit pipeline over HTTP
type Server struct {
	router     *gin.Engine
	service    *app.AuditService
	repository ports.ReportRepositoryPort
	logger     *internal.Logger
}

// NewServer creates the API server and registers routes
func NewServer(service *app.AuditService, repository ports.ReportRepositoryPort, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:     gin.Default(),
		service:    service,
		repository: repository,
		logger:     logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/audit", s.handleRunAudit)
	s.router.GET("/audit/:id", s.handleGetReport)
	s.router.GET("/audit", s.handleListReports)
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	s.logger.Info("API server listening on :%s", port)
	return s.router.Run(":" + port)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AuditRequest is the JSON body for POST /audit
type AuditRequest struct {
	Records             []table.Record    `json:"records" binding:"required"`
	LabelColumn         string            `json:"label_column" binding:"required"`
	PositiveValue       string            `json:"positive_value"`
	ProtectedAttributes []string          `json:"protected_attributes" binding:"required"`
	ModelOutputs        map[string]string `json:"model_outputs,omitempty"`
	ReferenceFacts      map[string]string `json:"reference_facts,omitempty"`
}

func (s *Server) handleRunAudit(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "records must not be empty"})
		return
	}

	headers := make([]string, 0, len(req.Records[0]))
	for col := range req.Records[0] {
		headers = append(headers, col)
	}
	sort.Strings(headers)
	ds := table.New(headers, req.Records)

	positive := req.PositiveValue
	if positive == "" {
		positive = "1"
	}
	label := table.LabelSpec{Column: req.LabelColumn, Positive: positive}

	result, err := s.service.RunFullAudit(c.Request.Context(), app.FullAuditRequest{
		Dataset:             ds,
		Label:               label,
		ProtectedAttributes: req.ProtectedAttributes,
		ModelOutputs:        req.ModelOutputs,
		ReferenceFacts:      req.ReferenceFacts,
	})
	if err != nil {
		if core.IsSchemaError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "schema validation failed",
				"missing_columns": core.MissingColumns(err),
			})
			return
		}
		s.logger.Error("audit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "audit failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stored, err := s.repository.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report":   stored.Report,
		"rendered": stored.Rendered,
	})
}

func (s *Server) handleListReports(c *gin.Context) {
	stored, err := s.repository.List(c.Request.Context(), 50)
	if err != nil {
		s.logger.Error("list reports failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	type item struct {
		ID          core.ReportID  `json:"id"`
		CreatedAt   core.Timestamp `json:"created_at"`
		DatasetRows int            `json:"dataset_rows"`
		LabelColumn string         `json:"label_column"`
	}
	items := make([]item, 0, len(stored))
	for _, sr := range stored {
		items = append(items, item{
			ID:          sr.Report.ID,
			CreatedAt:   sr.Report.CreatedAt,
			DatasetRows: sr.Report.Metadata.DatasetRows,
			LabelColumn: sr.Report.Metadata.LabelColumn,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reports": items})
}
