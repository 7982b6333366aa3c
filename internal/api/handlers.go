package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lingraph/lingraph/pkg/buildinfo"
	"github.com/lingraph/lingraph/pkg/cache"
	apperrors "github.com/lingraph/lingraph/pkg/errors"
	"github.com/lingraph/lingraph/pkg/graph"
	"github.com/lingraph/lingraph/pkg/morph"
	"github.com/lingraph/lingraph/pkg/observability"
	"github.com/lingraph/lingraph/pkg/pgraph"
	"github.com/lingraph/lingraph/pkg/pipeline"
	"github.com/lingraph/lingraph/pkg/render"
	"github.com/lingraph/lingraph/pkg/store"
	"github.com/lingraph/lingraph/pkg/text"
)

// =============================================================================
// Request / Response Shapes
// =============================================================================

// textRequest is the body of the stage endpoints.
type textRequest struct {
	Text string `json:"text"`
}

// runRequest is the body of POST /api/graphs. Header fields left at
// zero fall back to the server's configured defaults; annotate is a
// pointer so that an absent key and an explicit false stay apart.
type runRequest struct {
	Text     string `json:"text"`
	GraphID  uint64 `json:"graph_id"`
	SourceID uint64 `json:"source_id"`
	Version  uint64 `json:"version"`
	Annotate *bool  `json:"annotate"`
	Refresh  bool   `json:"refresh"`
}

// runResponse reports an archived pipeline run.
type runResponse struct {
	ID       string             `json:"id"`
	TextHash string             `json:"text_hash"`
	Stats    pipeline.Stats     `json:"stats"`
	Cache    pipeline.CacheInfo `json:"cache"`
}

// recordSummary is the listing shape for archived runs: everything a
// client needs to pick a record, without the text or the blob.
type recordSummary struct {
	ID            string    `json:"id"`
	TextHash      string    `json:"text_hash"`
	TokenCount    int       `json:"token_count"`
	SentenceCount int       `json:"sentence_count"`
	NodeCount     int       `json:"node_count"`
	EdgeCount     int       `json:"edge_count"`
	BlobSize      int       `json:"blob_size"`
	CreatedAt     time.Time `json:"created_at"`
}

func summarize(rec *store.Record) recordSummary {
	return recordSummary{
		ID:            rec.ID,
		TextHash:      rec.TextHash,
		TokenCount:    rec.TokenCount,
		SentenceCount: rec.SentenceCount,
		NodeCount:     rec.NodeCount,
		EdgeCount:     rec.EdgeCount,
		BlobSize:      rec.BlobSize,
		CreatedAt:     rec.CreatedAt,
	}
}

// tokenJSON is one token in a tokenize response.
type tokenJSON struct {
	Text  string   `json:"text"`
	Start int      `json:"start"`
	End   int      `json:"end"`
	Flags []string `json:"flags,omitempty"`
}

// sentenceJSON is one sentence in a segment response. Span holds rune
// offsets into the input; TokenRange holds half-open token indices.
type sentenceJSON struct {
	Text       string `json:"text"`
	Span       [2]int `json:"span"`
	TokenRange [2]int `json:"token_range"`
}

// morphJSON is one per-token analysis in an analyze response.
type morphJSON struct {
	Token string `json:"token"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Bits  uint16 `json:"bits"`
	Stop  bool   `json:"stop,omitempty"`
}

// =============================================================================
// Helpers
// =============================================================================

// decodeJSON reads the request body into v, answering the request
// itself when the body is unusable.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "malformed JSON body"))
		return false
	}
	return true
}

// runOptions merges a run request with the server's configured
// defaults.
func (s *Server) runOptions(req runRequest) pipeline.Options {
	opts := pipeline.Options{
		GraphID:  req.GraphID,
		SourceID: req.SourceID,
		Version:  req.Version,
		Refresh:  req.Refresh,
	}
	if opts.GraphID == 0 {
		opts.GraphID = s.defaults.GraphID
	}
	if opts.SourceID == 0 {
		opts.SourceID = s.defaults.SourceID
	}
	annotate := s.defaults.Annotate
	if req.Annotate != nil {
		annotate = *req.Annotate
	}
	opts.SkipAnnotate = !annotate
	return opts
}

// storeError translates store failures into coded errors.
func storeError(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.New(apperrors.ErrCodeNotFound, "no record with id %s", id)
	}
	return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "run archive unavailable")
}

// recordLabels builds the node label function for an archived record.
// Records always carry their input text; the fallback covers blobs
// imported from elsewhere.
func recordLabels(rec *store.Record) render.LabelFunc {
	if rec.Text == "" {
		return nil
	}
	return render.TokenLabeler(rec.Text)
}

// =============================================================================
// Health and Stage Endpoints
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("text")
	if err := apperrors.ValidateText(input); err != nil {
		s.writeError(w, err)
		return
	}

	tokens := text.Tokenize(input)
	out := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenJSON{
			Text:  tok.Text,
			Start: tok.Start,
			End:   tok.End,
			Flags: tok.Flags.Names(),
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(out),
		"tokens": out,
	})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := apperrors.ValidateText(req.Text); err != nil {
		s.writeError(w, err)
		return
	}

	tokens := text.Tokenize(req.Text)
	sentences := text.SegmentTokens(tokens)
	runes := []rune(req.Text)

	out := make([]sentenceJSON, len(sentences))
	for i, sent := range sentences {
		start := tokens[sent.Start].Start
		end := tokens[sent.End-1].End
		out[i] = sentenceJSON{
			Text:       string(runes[start:end]),
			Span:       [2]int{start, end},
			TokenRange: [2]int{sent.Start, sent.End},
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(out),
		"sentences": out,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := apperrors.ValidateText(req.Text); err != nil {
		s.writeError(w, err)
		return
	}

	tokens := text.Tokenize(req.Text)
	morphs := morph.Analyze(tokens, morph.NewVocab())

	out := make([]morphJSON, len(morphs))
	for i, m := range morphs {
		out[i] = morphJSON{
			Token: tokens[i].Text,
			Lemma: m.Lemma,
			POS:   m.POS.String(),
			Bits:  m.Bits,
			Stop:  m.Stop,
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(out),
		"morphs": out,
	})
}

// =============================================================================
// Graph Endpoints
// =============================================================================

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := apperrors.ValidateText(req.Text); err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.runOptions(req)
	opts.Logger = s.requestLogger(r)

	result, err := s.runner.Execute(r.Context(), req.Text, opts)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "pipeline run failed"))
		return
	}

	rec := store.NewRecord(result)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, storeError(err, rec.ID))
		return
	}

	if r.URL.Query().Get("format") == "pgraph" {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("X-Record-ID", rec.ID)
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write(result.Blob); err != nil {
			s.requestLogger(r).Error("write blob", "error", err)
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, runResponse{
		ID:       rec.ID,
		TextHash: result.TextHash,
		Stats:    result.Stats,
		Cache:    result.CacheInfo,
	})
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, storeError(err, ""))
		return
	}

	out := make([]recordSummary, len(records))
	for i, rec := range records {
		out[i] = summarize(rec)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(out),
		"records": out,
	})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateRecordID(id); err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, storeError(err, id))
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		s.serveRecordJSON(w, rec)
	case "pgraph":
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("X-Record-ID", rec.ID)
		if _, err := w.Write(rec.Blob); err != nil {
			s.requestLogger(r).Error("write blob", "error", err)
		}
	case "dot":
		g, err := s.decodeRecord(rec)
		if err != nil {
			s.writeError(w, err)
			return
		}
		dot := render.ToDOT(g, render.Options{LabelFunc: recordLabels(rec)})
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		if _, err := w.Write([]byte(dot)); err != nil {
			s.requestLogger(r).Error("write dot", "error", err)
		}
	case "svg", "png":
		data, err := s.renderRecord(r, rec, format)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if format == "svg" {
			w.Header().Set("Content-Type", "image/svg+xml")
		} else {
			w.Header().Set("Content-Type", "image/png")
		}
		if _, err := w.Write(data); err != nil {
			s.requestLogger(r).Error("write image", "error", err)
		}
	default:
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput,
			"unsupported format: %q (want json, pgraph, dot, svg, or png)", format))
	}
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateRecordID(id); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, storeError(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// serveRecordJSON answers with the record metadata plus the decoded
// graph, nodes labeled by their surface text.
func (s *Server) serveRecordJSON(w http.ResponseWriter, rec *store.Record) {
	g, err := s.decodeRecord(rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	view := graph.NewView(g, graph.ViewOptions{Label: recordLabels(rec)})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"record": summarize(rec),
		"text":   rec.Text,
		"graph":  view,
	})
}

// decodeRecord decodes the archived blob. A blob that no longer
// decodes is an archive integrity problem, not a caller mistake.
func (s *Server) decodeRecord(rec *store.Record) (*graph.Graph, error) {
	g, err := pgraph.Decode(rec.Blob)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "archived graph %s is unreadable", rec.ID)
	}
	return g, nil
}

// renderRecord produces the svg or png rendering of a record, cached
// per record and format. Renders are deterministic, so the record id
// fully identifies the output.
func (s *Server) renderRecord(r *http.Request, rec *store.Record, format string) ([]byte, error) {
	ctx := r.Context()
	key := s.keyer.HTTPKey("render", rec.ID+"."+format)

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.requestLogger(r).Warn("render cache read failed", "error", err)
	} else if ok {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, nil
	} else {
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	g, err := s.decodeRecord(rec)
	if err != nil {
		return nil, err
	}
	dot := render.ToDOT(g, render.Options{LabelFunc: recordLabels(rec)})

	var data []byte
	switch format {
	case "svg":
		data, err = render.RenderSVG(dot)
	case "png":
		data, err = render.RenderPNG(dot)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render %s failed", format)
	}

	if err := s.cache.Set(ctx, key, data, cache.TTLHTTP); err != nil {
		s.requestLogger(r).Warn("render cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}

// =============================================================================
// Lexicon Endpoint
// =============================================================================

func (s *Server) handleLexicon(w http.ResponseWriter, r *http.Request) {
	form := r.URL.Query().Get("form")
	if form == "" {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "missing form parameter"))
		return
	}
	if s.lexicon == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no dictionary loaded"))
		return
	}

	entries := s.lexicon.Lookup(form)
	if len(entries) == 0 {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no dictionary entry for %q", form))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"form":    form,
		"lemmas":  s.lexicon.Lemmas(form),
		"entries": entries,
	})
}
