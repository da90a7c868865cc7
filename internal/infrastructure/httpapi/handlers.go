package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/domain/build"
	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/infrastructure/sink"
	"github.com/bnema/veil/internal/logging"
)

// Handler serves the HTTP routes.
type Handler struct {
	stylesheet *sink.MemorySink
	rules      *usecase.ManageRulesUseCase
	preview    *usecase.PreviewStylesheetUseCase
	info       build.Info
	started    time.Time
}

// NewHandler creates the route handlers.
func NewHandler(
	stylesheet *sink.MemorySink,
	rules *usecase.ManageRulesUseCase,
	preview *usecase.PreviewStylesheetUseCase,
	info build.Info,
) *Handler {
	return &Handler{
		stylesheet: stylesheet,
		rules:      rules,
		preview:    preview,
		info:       info,
		started:    time.Now(),
	}
}

// GetStylesheet serves the latest compiled stylesheet with a version ETag.
func (h *Handler) GetStylesheet(c *gin.Context) {
	snap := h.stylesheet.Snapshot()
	if snap.Version == 0 {
		c.Header("Retry-After", "1")
		c.String(http.StatusServiceUnavailable, "/* stylesheet not compiled yet */\n")
		return
	}

	etag := `"v` + strconv.FormatUint(snap.Version, 10) + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	c.Header("Last-Modified", snap.UpdatedAt.UTC().Format(http.TimeFormat))

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(snap.CSS))
}

// GetRules returns the stored rule set.
func (h *Handler) GetRules(c *gin.Context) {
	rs, err := h.rules.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

// PreviewRequest selects a selector by name or index and the intensity to try.
type PreviewRequest struct {
	Selector  string `json:"selector"`
	Index     *int   `json:"index"`
	Intensity *int   `json:"intensity" binding:"required"`
	Commit    bool   `json:"commit"`
}

// PreviewResponse carries the stylesheet that was published.
type PreviewResponse struct {
	Index     int    `json:"index"`
	Intensity int    `json:"intensity"`
	Committed bool   `json:"committed"`
	CSS       string `json:"css"`
}

// PostPreview publishes a stylesheet with one overridden intensity and
// optionally stores it.
func (h *Handler) PostPreview(c *gin.Context) {
	ctx := c.Request.Context()

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var index int
	switch {
	case req.Index != nil:
		index = *req.Index
	case req.Selector != "":
		i, err := h.preview.IndexOf(ctx, req.Selector)
		if err != nil {
			h.fail(c, err)
			return
		}
		index = i
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "selector or index is required"})
		return
	}

	input := usecase.PreviewInput{Index: index, Intensity: *req.Intensity}
	css, err := h.preview.Preview(ctx, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Commit {
		if err := h.preview.Commit(ctx, input); err != nil {
			h.fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Index:     index,
		Intensity: input.Intensity,
		Committed: req.Commit,
		CSS:       css,
	})
}

// GetHealth reports liveness and the stylesheet version.
func (h *Handler) GetHealth(c *gin.Context) {
	snap := h.stylesheet.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"version":            h.info.Version,
		"uptime":             time.Since(h.started).Round(time.Second).String(),
		"stylesheet_version": snap.Version,
		"stylesheet_bytes":   len(snap.CSS),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrRuleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidIntensity), errors.Is(err, entity.ErrInvalidMode):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
