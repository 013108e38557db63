package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/report"
	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/pkg/align"
	"github.com/baditaflorin/go_sentence_diff/pkg/compare"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 32 * 1024 * 1024 // 32MB, DOCX uploads included
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
	DefaultThreshold      = 0.3
)

var (
	// Sentence aligner built at startup with the default threshold
	sentenceAligner *align.SentenceAligner

	// Document comparer for uploaded DOCX/HTML pairs
	documentComparer *compare.DocumentComparer

	// Span renderer shared by the JSON endpoints
	htmlRenderer *report.HTMLRenderer

	// Logger instance
	logger l.Logger
)

// AlignRequest represents a sentence alignment request
type AlignRequest struct {
	Left      []string `json:"left"`
	Right     []string `json:"right"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// AlignRow is one rendered report row
type AlignRow struct {
	Left        string `json:"left"`
	Right       string `json:"right"`
	MissingLeft bool   `json:"missing_left"`
}

// AlignResponse represents a sentence alignment response
type AlignResponse struct {
	Rows      []AlignRow             `json:"rows"`
	Matched   int                    `json:"matched"`
	Missing   int                    `json:"missing"`
	Extra     int                    `json:"extra"`
	Threshold float64                `json:"threshold"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// CompareResponse represents a document comparison response
type CompareResponse struct {
	Name       string `json:"name"`
	ReportPath string `json:"report_path"`
	Matched    int    `json:"matched"`
	Missing    int    `json:"missing"`
	Extra      int    `json:"extra"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	threshold := flag.Float64("threshold", DefaultThreshold, "Default sentence match threshold")
	outputDir := flag.String("output-dir", "comparisons", "Directory for comparison pages")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting sentence diff HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"threshold", *threshold,
		"output_dir", *outputDir,
	)

	// Initialize alignment components
	initComparers(*threshold, *outputDir, *warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initComparers builds the aligner and document comparer used by the handlers
func initComparers(threshold float64, outputDir string, warmUp bool) {
	var err error

	opts := []align.Option{
		align.WithThreshold(threshold),
		align.WithLogger(logger),
	}
	if warmUp {
		opts = append(opts, align.WithWarmUp(true))
	}

	sentenceAligner, err = align.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize sentence aligner", "error", err)
		os.Exit(1)
	}

	documentComparer, err = compare.New(
		compare.WithThreshold(threshold),
		compare.WithOutputDir(outputDir),
		compare.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize document comparer", "error", err)
		os.Exit(1)
	}

	htmlRenderer = report.NewHTMLRenderer()

	logger.Info("Alignment components initialized successfully", "warm_up", warmUp)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "SentenceDiffServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/align":
		handleAlign(ctx)
	case "/compare":
		handleCompare(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleAlign aligns two sentence sequences supplied as JSON arrays
func handleAlign(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req AlignRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	aligner := sentenceAligner
	if req.Threshold != nil {
		// A per-request threshold gets its own aligner; construction
		// validates the value and costs no shared state.
		custom, err := align.New(
			align.WithThreshold(*req.Threshold),
			align.WithLogger(logger),
		)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			writeJSONError(ctx, "Invalid threshold: "+err.Error())
			return
		}
		aligner = custom
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alignment := aligner.Align(c, req.Left, req.Right)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, toAlignResponse(alignment))
}

// handleCompare compares an uploaded DOCX/HTML pair and writes a report page
func handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid multipart form: "+err.Error())
		return
	}

	docxData, docxName, err := formFile(form, "docx")
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}
	htmlData, _, err := formFile(form, "html")
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	name := docxName
	if values := form.Value["name"]; len(values) > 0 && values[0] != "" {
		name = values[0]
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	outcome, err := documentComparer.Compare(c, name, docxData, htmlData)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, CompareResponse{
		Name:       outcome.Name,
		ReportPath: outcome.ReportPath,
		Matched:    outcome.Alignment.Matched,
		Missing:    outcome.Alignment.MissingCount,
		Extra:      outcome.Alignment.ExtraCount,
	})
}

// toAlignResponse renders alignment rows to inline markup for the JSON API
func toAlignResponse(alignment domain.Alignment) AlignResponse {
	response := AlignResponse{
		Rows:      make([]AlignRow, 0, len(alignment.Rows)),
		Matched:   alignment.Matched,
		Missing:   alignment.MissingCount,
		Extra:     alignment.ExtraCount,
		Threshold: alignment.Threshold,
		Details:   alignment.Details,
	}
	for _, row := range alignment.Rows {
		left, right := htmlRenderer.RenderRow(row)
		response.Rows = append(response.Rows, AlignRow{
			Left:        left,
			Right:       right,
			MissingLeft: row.MissingLeft,
		})
	}
	return response
}

// formFile reads one uploaded file from the multipart form
func formFile(form *multipart.Form, field string) ([]byte, string, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, "", fmt.Errorf("missing %q file upload", field)
	}

	f, err := headers[0].Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening %q upload: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("reading %q upload: %w", field, err)
	}

	base := filepath.Base(headers[0].Filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return data, stem, nil
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
