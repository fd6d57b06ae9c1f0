package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/dgallion1/navtree/internal/render"
)

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sidebar.Snapshot())
}

func (s *Server) handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	s.sidebar.Toggle(chi.URLParam(r, "key"))
	writeJSON(w, http.StatusOK, s.sidebar.Snapshot())
}

func (s *Server) handleSidebarSelect(w http.ResponseWriter, r *http.Request) {
	s.sidebar.Select(chi.URLParam(r, "key"))
	writeJSON(w, http.StatusOK, s.sidebar.Snapshot())
}

// handleSidebarRoute opens the ancestors of the page at ?path= and selects it.
func (s *Server) handleSidebarRoute(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}
	var pages navtree.PageMap
	if c := s.fetcher.Content(); c != nil {
		pages = c.Pages
	}
	s.sidebar.FollowRoute(pages, path)
	writeJSON(w, http.StatusOK, s.sidebar.Snapshot())
}

type filterRequest struct {
	Text string `json:"text"`
}

// handleSidebarFilter records filter input. The filter takes effect after
// the debounce delay, so the response is 202.
func (s *Server) handleSidebarFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.sidebar.SetFilterInput(req.Text)
	writeJSON(w, http.StatusAccepted, s.sidebar.Snapshot())
}

func (s *Server) handleSidebarClearFilter(w http.ResponseWriter, r *http.Request) {
	s.sidebar.ClearFilter()
	writeJSON(w, http.StatusOK, s.sidebar.Snapshot())
}

// handleSidebarHTML renders the sidebar for the page at ?path=. The shared
// filter and expanded nodes apply; the route's ancestors are always open.
func (s *Server) handleSidebarHTML(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	snap := s.sidebar.Snapshot()

	opts := render.Options{
		ActiveKeys:  s.fetcher.ActiveKeys(path),
		OpenKeys:    s.sidebar.OpenKeys(),
		SelectedKey: snap.SelectedKey,
		ExpandAll:   snap.FilterActive,
	}
	if c := s.fetcher.Content(); c != nil && path != "" {
		if key, ok := navtree.FindByRoute(c.Pages, path); ok {
			opts.SelectedKey = key
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, s.sidebar.View(s.tree()), opts); err != nil {
		s.log.Error("render sidebar failed", "error", err)
	}
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if err := render.Markdown(w, s.tree()); err != nil {
		s.log.Error("render outline failed", "error", err)
	}
}
