package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/wethinkt/go-tonekit/internal/catalog"
	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/raster"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
	minPreviewSide   = 16
	maxPreviewSide   = 4096
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, msg string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: msg})
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// handleGetPalette returns the current palette state.
func (s *Server) handleGetPalette(w http.ResponseWriter, r *http.Request) {
	var st palette.State
	s.Do(func(m *palette.Manager) { st = m.State() })
	writeJSON(w, http.StatusOK, st)
}

// handleGetPalettes returns one page of catalog names.
// GET /api/v1/palettes?offset=0&limit=50
func (s *Server) handleGetPalettes(w http.ResponseWriter, r *http.Request) {
	offset, ok := queryInt(r, "offset", 0)
	if !ok || offset < 0 {
		writeError(w, http.StatusBadRequest, "validation_error", "offset must be a non-negative integer")
		return
	}
	limit, ok := queryInt(r, "limit", defaultPageLimit)
	if !ok || limit < 1 {
		writeError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
		return
	}
	limit = min(limit, maxPageLimit)

	var list catalog.Listing
	s.Do(func(m *palette.Manager) { list = catalog.List(m.Catalog(), m.Index(), offset, limit) })
	writeJSON(w, http.StatusOK, list)
}

// handleGetPreview renders the palette preview as PNG.
// GET /preview.png?w=960&h=160
func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	width, okW := queryInt(r, "w", s.config.PreviewWidth)
	height, okH := queryInt(r, "h", s.config.PreviewHeight)
	if !okW || !okH || width < minPreviewSide || height < minPreviewSide || width > maxPreviewSide || height > maxPreviewSide {
		writeError(w, http.StatusBadRequest, "validation_error", "w and h must be integers between 16 and 4096")
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	var err error
	s.Do(func(m *palette.Manager) {
		err = raster.RenderPreview(&buf, m, width, height, s.config.Preview, s.config.Background)
	})
	previewDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		previewRenders.WithLabelValues("error").Inc()
		tonelog.Log.Error("Preview render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "render_error", err.Error())
		return
	}
	previewRenders.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// handleIndex serves a page that shows the preview and refreshes it on every event.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>tonekit</title></head>
<body style="margin:0;background:#222">
<img id="preview" src="/preview.png" style="display:block;max-width:100%">
<script>
const img = document.getElementById("preview");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = () => { img.src = "/preview.png?t=" + Date.now(); };
</script>
</body>
</html>`))
}
