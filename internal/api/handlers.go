package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amidalab/amidakuji/pkg/cache"
	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/history"
	"github.com/amidalab/amidakuji/pkg/observability"
	"github.com/amidalab/amidakuji/pkg/pipeline"
	"github.com/amidalab/amidakuji/pkg/share"
)

// formatContentTypes maps output formats to response content types.
var formatContentTypes = map[string]string{
	pipeline.FormatSVG:    "image/svg+xml",
	pipeline.FormatPNG:    "image/png",
	pipeline.FormatPDF:    "application/pdf",
	pipeline.FormatText:   "text/plain; charset=utf-8",
	pipeline.FormatDOT:    "text/vnd.graphviz",
	pipeline.FormatDOTSVG: "image/svg+xml",
	pipeline.FormatJSON:   "application/json",
}

// createDrawRequest is the body of POST /v1/draws.
type createDrawRequest struct {
	Participants []string `json:"participants"`
	Results      []string `json:"results"`
	MinRows      int      `json:"min_rows,omitempty"`
	NoFill       bool     `json:"no_fill,omitempty"`
}

// drawResponse is the JSON view of a stored draw.
type drawResponse struct {
	*history.Draw
	ShareCode string `json:"share_code,omitempty"`
	ShareURL  string `json:"share_url,omitempty"`
}

func (s *Server) handleCreateDraw(w http.ResponseWriter, req *http.Request) {
	var body createDrawRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}

	opts := pipeline.Options{
		Participants: body.Participants,
		Results:      body.Results,
		MinRows:      body.MinRows,
		NoFill:       body.NoFill,
		Formats:      []string{pipeline.FormatSVG},
		Logger:       s.logger,
	}
	result, err := s.runner.Execute(req.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	draw := history.New(result.Ladder, result.LadderHash)
	if err := s.store.Save(req.Context(), draw); err != nil {
		writeError(w, err)
		return
	}

	resp := drawResponse{Draw: draw}
	if code, err := share.Encode(body.Participants, body.Results); err == nil {
		resp.ShareCode = code
		if url, err := share.URL(s.shareBaseURL, code); err == nil {
			resp.ShareURL = url
		}
	}

	s.logger.Info("created draw", "id", draw.ID, "columns", result.Ladder.Columns)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListDraws(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	draws, err := s.store.List(req.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"draws": draws, "count": len(draws)})
}

func (s *Server) handleGetDraw(w http.ResponseWriter, req *http.Request) {
	draw, err := s.store.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drawResponse{Draw: draw})
}

func (s *Server) handleDeleteDraw(w http.ResponseWriter, req *http.Request) {
	if err := s.store.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderDraw re-renders a stored draw. Identical render options hit
// the artifact cache because the stored ladder hash keys the artifacts.
func (s *Server) handleRenderDraw(w http.ResponseWriter, req *http.Request) {
	draw, err := s.store.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	q := req.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Participants: draw.Ladder.Participants,
		Results:      draw.Ladder.Results,
		Formats:      []string{format},
		Style:        q.Get("style"),
		Logger:       s.logger,
	}
	if v := q.Get("highlight"); v != "" {
		col, err := strconv.Atoi(v)
		if err != nil || col < 0 || col >= draw.Ladder.Columns {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid highlight column: %q", v))
			return
		}
		opts.Highlight = &col
	}

	artifacts, err := s.runner.Render(req.Context(), draw.Ladder, draw.LadderHash, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", formatContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// shareRequest is the body of POST /v1/share.
type shareRequest struct {
	Participants []string `json:"participants"`
	Results      []string `json:"results"`
}

func (s *Server) handleCreateShare(w http.ResponseWriter, req *http.Request) {
	var body shareRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return
	}

	code, err := share.Encode(body.Participants, body.Results)
	if err != nil {
		writeError(w, err)
		return
	}
	url, err := share.URL(s.shareBaseURL, code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"code": code, "url": url})
}

func (s *Server) handleDecodeShare(w http.ResponseWriter, req *http.Request) {
	participants, results, err := share.Decode(chi.URLParam(req, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"participants": participants,
		"results":      results,
	})
}

func (s *Server) handleShareQR(w http.ResponseWriter, req *http.Request) {
	code := chi.URLParam(req, "code")
	if _, _, err := share.Decode(code); err != nil {
		writeError(w, err)
		return
	}

	url, err := share.URL(s.shareBaseURL, code)
	if err != nil {
		writeError(w, err)
		return
	}

	size := 256
	if v := req.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 32 || n > 2048 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid size: %q", v))
			return
		}
		size = n
	}

	// QR rendering is a pure function of code and size, so images are
	// served from the artifact cache when possible.
	ctx := req.Context()
	key := s.runner.Keyer.ShareKey(code, size)
	if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "share")
		writePNG(w, data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "share")

	png, err := share.QR(url, size)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.runner.Cache.Set(ctx, key, png, cache.TTLShare); err == nil {
		observability.Cache().OnCacheSet(ctx, "share", len(png))
	}
	writePNG(w, png)
}

// writePNG writes a PNG image response.
func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes a JSON error
// body. Internal details stay in the log; clients get the user message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidEncoding,
		errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDrawNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}
