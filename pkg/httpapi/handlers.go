// Package httpapi exposes the corrector over HTTP with gin and publishes
// Prometheus metrics for every route.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/corrector"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

const (
	DefaultMaxBatch        = 1000
	DefaultCompletionLimit = 10
	maxCompletionLimit     = 100
	requestIDHeader        = "X-Request-ID"
	shutdownTimeout        = 5 * time.Second
)

// Options tune request validation and batch parallelism. Dictionary is
// optional; without it /v1/complete answers 503.
type Options struct {
	MaxWordLength int
	MaxBatch      int
	Workers       int
	Dictionary    *dictionary.Dictionary
}

// Handlers serves correction requests.
type Handlers struct {
	corrector *corrector.Corrector
	opts      Options
	logger    *log.Logger
}

// NewHandlers returns handlers around c. A non-positive MaxBatch uses
// DefaultMaxBatch.
func NewHandlers(c *corrector.Corrector, opts Options) *Handlers {
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = DefaultMaxBatch
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Handlers{corrector: c, opts: opts, logger: logger.New("http")}
}

// NewRouter registers all routes:
//
//	POST /v1/correct - correct one word
//	POST /v1/correct/batch - correct a list of words
//	GET  /v1/complete?prefix=&limit= - dictionary words starting with prefix
//	GET  /v1/health - liveness, cache and dictionary stats
//	GET  /metrics - Prometheus metrics
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.observe)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	v1.POST("/correct", h.HandleCorrect)
	v1.POST("/correct/batch", h.HandleBatch)
	v1.GET("/complete", h.HandleComplete)
	v1.GET("/health", h.HandleHealth)
	return router
}

// observe tags the request with an ID and records its latency and status.
func (h *Handlers) observe(c *gin.Context) {
	start := time.Now()
	requestID := getOrCreateRequestID(c)

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	elapsed := time.Since(start)
	requestLatency.WithLabelValues(route).Observe(elapsed.Seconds())
	requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	h.logger.Debug("Handled request", "request_id", requestID, "route", route, "status", status, "took", elapsed)
}

// getOrCreateRequestID gets or creates a request ID.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)
	return requestID
}

// HandleCorrect handles POST /v1/correct.
//
// Response:
//
//	200 OK: corrector.Result
//	400 Bad Request: missing, empty or overlong word
func (h *Handlers) HandleCorrect(c *gin.Context) {
	var req CorrectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if !utils.IsValidInput(req.Word, h.opts.MaxWordLength) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("word must be at most %d characters without spaces", h.opts.MaxWordLength),
			Code:  "INVALID_WORD",
		})
		return
	}

	res := h.corrector.Correct(req.Word)
	recordResult(res.Changed)
	c.JSON(http.StatusOK, res)
}

// HandleBatch handles POST /v1/correct/batch. Results keep the request order.
//
// Response:
//
//	200 OK: BatchResponse
//	400 Bad Request: empty list, too many words or an invalid word
//	503 Service Unavailable: the client went away mid batch
func (h *Handlers) HandleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if len(req.Words) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "words must not be empty", Code: "INVALID_REQUEST"})
		return
	}
	if len(req.Words) > h.opts.MaxBatch {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("batch exceeds %d words", h.opts.MaxBatch),
			Code:  "BATCH_TOO_LARGE",
		})
		return
	}
	for i, w := range req.Words {
		if !utils.IsValidInput(w, h.opts.MaxWordLength) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("invalid word at index %d", i),
				Code:  "INVALID_WORD",
			})
			return
		}
	}

	results, err := h.corrector.CorrectAll(c.Request.Context(), req.Words, h.opts.Workers)
	if err != nil {
		h.logger.Warn("Batch aborted", "words", len(req.Words), "err", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "BATCH_ABORTED"})
		return
	}
	for _, r := range results {
		recordResult(r.Changed)
	}
	c.JSON(http.StatusOK, BatchResponse{Results: results, Count: len(results)})
}

// HandleComplete handles GET /v1/complete.
//
// Query Parameters:
//
//	prefix: word prefix (required)
//	limit: maximum number of words (optional, default 10, at most 100)
//
// Response:
//
//	200 OK: CompleteResponse
//	400 Bad Request: missing prefix or bad limit
//	503 Service Unavailable: no dictionary attached
func (h *Handlers) HandleComplete(c *gin.Context) {
	if h.opts.Dictionary == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "completion requires a dictionary", Code: "NO_DICTIONARY"})
		return
	}
	prefix := utils.NormalizeWord(c.Query("prefix"))
	if !utils.IsValidInput(prefix, h.opts.MaxWordLength) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid prefix", Code: "INVALID_REQUEST"})
		return
	}
	limit := DefaultCompletionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxCompletionLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("limit must be between 1 and %d", maxCompletionLimit),
				Code:  "INVALID_REQUEST",
			})
			return
		}
		limit = n
	}

	words := h.opts.Dictionary.Complete(prefix, limit)
	if words == nil {
		words = []dictionary.Entry{}
	}
	c.JSON(http.StatusOK, CompleteResponse{Prefix: prefix, Words: words, Count: len(words)})
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Cache: h.corrector.Stats()}
	if h.opts.Dictionary != nil {
		resp.Dictionary = h.opts.Dictionary.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	}
}
