// Package api - Thin HTTP layer over the pricing core.
// The API is ONLY responsible for: input ingestion, core orchestration,
// output serialization. It NEVER performs pricing logic.
package api

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ingredient-pricing/adapters/tabular"
	"ingredient-pricing/core/bulk"
	"ingredient-pricing/core/output"
	"ingredient-pricing/core/pricing"
	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/errors"
	"ingredient-pricing/internal/logging"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Server is the API server
type Server struct {
	engine      *gin.Engine
	calc        *pricing.Calculator
	proc        *bulk.Processor
	formatter   *output.Formatter
	maxUploadMB int64
	version     string
	log         *zap.Logger
}

// NewServer creates an API server around an already-constructed
// calculator and processor.
func NewServer(version string, cfg *config.Config, calc *pricing.Calculator, proc *bulk.Processor) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	engine.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	s := &Server{
		engine:      engine,
		calc:        calc,
		proc:        proc,
		formatter:   output.NewFormatter(cfg.Currency, cfg.Precision),
		maxUploadMB: cfg.Server.MaxUploadMB,
		version:     version,
		log:         logging.Named("api"),
	}

	s.registerRoutes(cfg.Server.UIPath)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes(uiPath string) {
	// Core endpoints
	s.engine.POST("/calculate", s.handleCalculate)
	s.engine.POST("/upload", s.handleUpload)
	s.engine.POST("/download", s.handleDownload)

	// Supporting endpoints
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/version", s.handleVersion)

	// UI static files
	if uiPath != "" {
		s.engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(uiPath))))
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return cors.New(corsCfg)
}

// handleCalculate handles POST /calculate
func (s *Server) handleCalculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	outcome := s.calc.Calculate(req.IngredientName, req.QuantityInput, req.PriceInput)

	resp := CalculateResponse{IngredientName: outcome.IngredientName}
	if outcome.Success {
		resp.Success = true
		resp.Results = &UnitPricesResponse{
			KG: outcome.Prices.KG.InexactFloat64(),
			G:  outcome.Prices.G.InexactFloat64(),
			MG: outcome.Prices.MG.InexactFloat64(),
		}
	} else {
		resp.Error = outcome.Err.Message
	}

	c.JSON(http.StatusOK, resp)
}

// handleUpload handles POST /upload
func (s *Server) handleUpload(c *gin.Context) {
	// MaxMultipartMemory only bounds buffering; the hard size cap is
	// enforced on the body itself so oversize uploads fail before the
	// file is parsed.
	if s.maxUploadMB > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadMB<<20)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("File is too large. Maximum allowed size is %d MB", s.maxUploadMB),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error processing file"})
		return
	}
	defer file.Close()

	// Extension allow-list is enforced by ReadFile before any parsing.
	rows, readErr := tabular.ReadFile(fileHeader.Filename, file)
	if readErr != nil {
		s.writeError(c, readErr)
		return
	}

	results, procErr := s.proc.Process(c.Request.Context(), rows)
	if procErr != nil {
		s.writeError(c, procErr)
		return
	}

	items := make([]UploadRowResponse, len(results))
	for i, r := range results {
		items[i] = s.uploadRow(r)
	}

	s.log.Info("bulk upload processed",
		zap.String("filename", fileHeader.Filename),
		zap.Int("rows", len(items)),
	)

	c.JSON(http.StatusOK, UploadResponse{
		Success:    true,
		Results:    items,
		TotalItems: len(items),
	})
}

// uploadRow maps a processed bulk row to its response shape.
func (s *Server) uploadRow(r bulk.ResultRow) UploadRowResponse {
	quantity := r.Quantity
	if r.QuantityMissing {
		quantity = "Not provided"
	}

	item := UploadRowResponse{
		IngredientName: r.Ingredient,
		QuantityInput:  quantity,
		PriceInput:     r.Price,
		Status:         r.Status,
	}
	if r.Outcome.Success && r.Outcome.Prices != nil {
		item.Results = &UploadRowPrices{
			KG: s.formatter.PerKG(r.Outcome.Prices.KG),
			G:  s.formatter.PerG(r.Outcome.Prices.G),
			MG: s.formatter.PerMG(r.Outcome.Prices.MG),
		}
	}
	return item
}

// handleDownload handles POST /download
func (s *Server) handleDownload(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data received"})
		return
	}
	if len(req.Results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results to download"})
		return
	}
	if len(req.Results) > s.proc.MaxRows() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Too many results. Maximum %d items allowed for download.", s.proc.MaxRows()),
		})
		return
	}

	records := make([][]string, len(req.Results))
	for i, row := range req.Results {
		records[i] = []string{
			row.IngredientName,
			string(row.QuantityInput),
			string(row.PriceInput),
			orNA(row.PerKG),
			orNA(row.PerG),
			orNA(row.PerMG),
			row.Status,
		}
	}

	var buf bytes.Buffer
	var filename, contentType string

	exportID := uuid.NewString()
	switch req.Format {
	case "csv":
		filename, contentType = "pricing_results_"+exportID+".csv", csvContentType
		if writeErr := tabular.WriteCSV(&buf, records); writeErr != nil {
			s.writeError(c, writeErr)
			return
		}
	default:
		filename, contentType = "pricing_results_"+exportID+".xlsx", xlsxContentType
		if writeErr := tabular.WriteExcel(&buf, records); writeErr != nil {
			s.writeError(c, writeErr)
			return
		}
	}

	s.log.Info("download generated",
		zap.String("export_id", exportID),
		zap.String("format", req.Format),
		zap.Int("rows", len(records)),
	)

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     s.version,
		"engine":      "ingredient-pricing",
		"api_version": "v1",
	})
}

// writeError maps a domain error to an HTTP response. All error types
// here are caller mistakes except INTERNAL_ERROR and EXPORT_ERROR.
func (s *Server) writeError(c *gin.Context, err *errors.Error) {
	status := http.StatusBadRequest
	switch err.Type {
	case errors.TypeInternal, errors.TypeExport:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"success": false, "error": err.Message})
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
