package ui

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/scrawl-labs/scrawl/internal/store"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

//go:embed editor.html
var editorHTML string

var editorTmpl = template.Must(template.New("editor").Parse(editorHTML))

// defaultSource is what the editor shows before anything is typed or loaded.
const defaultSource = "pie title Pets\n\"Dogs\": 386\n\"Cats\": 85\n\"Rats\": 15\n"

// editorData feeds the editor page template.
type editorData struct {
	Source  string
	Version string
}

// EditorSignals are the datastar signals the editor page binds.
type EditorSignals struct {
	Source string `json:"source"`
}

// routes attaches all endpoints to the mux.
func (s *Server) routes(r chi.Router) {
	r.Get("/", s.EditorPage)
	r.Get("/s/{id}", s.EditorPage)
	r.Post("/render/preview", s.RenderPreview)
	r.Post("/render/save", s.SaveFromEditor)
	r.Get("/watch/updates", s.WatchUpdates)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.APIRender)
		r.Get("/types", s.APITypes)
		r.Route("/snippets", func(r chi.Router) {
			r.Post("/", s.SaveSnippet)
			r.Get("/", s.ListSnippets)
			r.Get("/{id}", s.GetSnippet)
			r.Delete("/{id}", s.DeleteSnippet)
		})
	})

	r.Get("/healthz", s.Health)
}

// EditorPage serves the live editor, optionally preloaded with a stored
// snippet.
func (s *Server) EditorPage(w http.ResponseWriter, r *http.Request) {
	source := defaultSource
	if id := chi.URLParam(r, "id"); id != "" {
		if s.store == nil {
			http.Error(w, "no snippet store configured", http.StatusNotFound)
			return
		}
		sn, err := s.store.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		source = sn.Source
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := editorTmpl.Execute(w, editorData{Source: source, Version: diagram.Version}); err != nil {
		s.logger.Error("failed to render editor page", "error", err)
	}
}

// RenderPreview renders the editor buffer and patches the preview pane.
func (s *Server) RenderPreview(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals EditorSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	sse := datastar.NewSSE(w, r)

	res, err := diagram.Render(r.Context(), "preview", signals.Source)
	if err != nil {
		_ = sse.PatchElements(errorPane(err))
		return
	}
	_ = sse.PatchElements(previewPane(res.SVG))
}

// SaveFromEditor stores the editor buffer as a snippet and rewrites the
// address bar to its permalink.
func (s *Server) SaveFromEditor(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals EditorSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	sse := datastar.NewSSE(w, r)
	if s.store == nil {
		_ = sse.ConsoleError(errors.New("no snippet store configured, restart with --store"))
		return
	}

	sn := store.Snippet{Source: signals.Source}
	fillSnippetMeta(r.Context(), &sn)
	if err := s.store.Save(&sn); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	s.logger.Debug("saved snippet", "id", sn.ID, "kind", sn.Kind)
	_ = sse.ExecuteScript(fmt.Sprintf("history.replaceState({}, '', '/s/%s')", sn.ID))
}

// WatchUpdates is the long-lived update stream behind the --watch flag.
// Every broadcast re-renders the last changed file into the preview pane
// of all connected editors.
func (s *Server) WatchUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := s.sendChangedDiagram(ctx, sse); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - keep trying on next update
			}
		}
	}
}

// sendChangedDiagram renders the most recently changed watched file and
// patches it into the preview pane.
func (s *Server) sendChangedDiagram(ctx context.Context, sse *datastar.ServerSentEventGenerator) error {
	name := s.changed()
	if name == "" {
		return nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	res, err := diagram.Render(ctx, "preview", string(data))
	if err != nil {
		return sse.PatchElements(errorPane(err))
	}
	return sse.PatchElements(previewPane(res.SVG))
}

// previewPane wraps rendered SVG for patching into the editor. The SVG is
// our own renderer's output with all user text already escaped.
func previewPane(svg []byte) string {
	return `<div id="preview" class="preview">` + string(svg) + `</div>`
}

func errorPane(err error) string {
	return `<div id="preview" class="preview preview-error"><pre>` +
		template.HTMLEscapeString(err.Error()) + `</pre></div>`
}

// renderRequest is the JSON body of POST /api/render.
type renderRequest struct {
	Source string `json:"source"`
	ID     string `json:"id,omitempty"`
}

// renderResponse is the JSON reply of POST /api/render.
type renderResponse struct {
	SVG    string `json:"svg,omitempty"`
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// APIRender renders posted diagram text and returns the SVG as JSON.
// Parse failures come back as 422 with the offending position.
func (s *Server) APIRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	id := req.ID
	if id == "" {
		id = "diagram"
	}

	res, err := diagram.Render(r.Context(), id, req.Source)
	if err != nil {
		resp := renderResponse{Error: err.Error()}
		var perr *diagram.ParseError
		if errors.As(err, &perr) {
			resp.Type = perr.Type
			resp.Line = perr.Line
			resp.Column = perr.Column
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		SVG:   string(res.SVG),
		Type:  res.Type,
		Title: res.Title,
	})
}

// APITypes lists every diagram kind the server can render.
func (s *Server) APITypes(w http.ResponseWriter, _ *http.Request) {
	seen := make(map[string]bool)
	var kinds []string
	for _, kind := range diagram.Loaders() {
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	for _, kind := range diagram.List() {
		if !seen[kind] {
			kinds = append(kinds, kind)
		}
	}
	sort.Strings(kinds)

	writeJSON(w, http.StatusOK, map[string]any{"types": kinds})
}

// SaveSnippet stores the posted snippet and returns it with its id filled.
func (s *Server) SaveSnippet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no snippet store configured", http.StatusNotImplemented)
		return
	}

	var sn store.Snippet
	if err := json.NewDecoder(r.Body).Decode(&sn); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if sn.Source == "" {
		http.Error(w, "source is required", http.StatusBadRequest)
		return
	}

	fillSnippetMeta(r.Context(), &sn)
	if err := s.store.Save(&sn); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, &sn)
}

// fillSnippetMeta derives the kind and title from the source so listings
// have something to show. A snippet that does not render is still saved; a
// broken editor buffer gets best-effort detection and an empty title.
func fillSnippetMeta(ctx context.Context, sn *store.Snippet) {
	if res, err := diagram.Render(ctx, "snippet", sn.Source); err == nil {
		if sn.Kind == "" {
			sn.Kind = res.Type
		}
		if sn.Title == "" {
			sn.Title = res.Title
		}
		return
	}

	p, err := diagram.Preprocess(sn.Source)
	if err != nil {
		return
	}
	if sn.Title == "" {
		sn.Title = p.Title
	}
	if sn.Kind == "" {
		if typ, err := diagram.DetectType(p.Code, diagram.CurrentConfig()); err == nil {
			sn.Kind = typ
		}
	}
}

// ListSnippets returns stored snippets, most recently updated first.
func (s *Server) ListSnippets(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no snippet store configured", http.StatusNotImplemented)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	snippets, err := s.store.List(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if snippets == nil {
		snippets = []*store.Snippet{}
	}
	writeJSON(w, http.StatusOK, snippets)
}

// GetSnippet returns a single stored snippet by id.
func (s *Server) GetSnippet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no snippet store configured", http.StatusNotImplemented)
		return
	}

	sn, err := s.store.Get(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sn)
}

// DeleteSnippet removes a stored snippet by id.
func (s *Server) DeleteSnippet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no snippet store configured", http.StatusNotImplemented)
		return
	}

	err := s.store.Delete(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health reports server status for probes.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  diagram.Version,
		"watching": s.watchDir != "",
		"store":    s.store != nil,
		"clients":  s.notifier.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
