package api

import (
	"context"
	"net/http"

	"github.com/dgallion1/navtree/internal/contents"
	"github.com/dgallion1/navtree/internal/navtree"
)

type contentsResponse struct {
	IsLoading bool             `json:"is_loading"`
	Error     string           `json:"error,omitempty"`
	Result    *navtree.Content `json:"result"`
}

func stateResponse(st contents.State) contentsResponse {
	resp := contentsResponse{IsLoading: st.IsLoading, Result: st.Result}
	if st.LastError != nil {
		resp.Error = st.LastError.Error()
	}
	return resp
}

func (s *Server) handleContents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse(s.fetcher.State()))
}

// handleFetch starts a fetch in the background and answers with the state
// right after the start. The fetcher ignores the call when a result is
// already held or a fetch is running.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	st := s.fetcher.Start(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusAccepted, stateResponse(st))
}

// tree builds the navigation tree from the fetched document.
func (s *Server) tree() []*navtree.TreeNode {
	return navtree.BuildTreeDepth(s.fetcher.Content(), s.cfg.MaxDepth)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var query string
	if q.Has("q") {
		query = navtree.NormalizeQuery(q.Get("q"))
	} else {
		query = s.sidebar.FilterText()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tree":        navtree.FilterTree(s.tree(), query),
		"query":       query,
		"active_keys": s.fetcher.ActiveKeys(q.Get("path")).Sorted(),
		"is_loading":  s.fetcher.State().IsLoading,
	})
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}

	resp := map[string]any{
		"path":        path,
		"active_keys": s.fetcher.ActiveKeys(path).Sorted(),
	}
	if c := s.fetcher.Content(); c != nil {
		if key, ok := navtree.FindByRoute(c.Pages, path); ok {
			resp["page_key"] = key
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	c := s.fetcher.Content()
	if c == nil {
		jsonError(w, "contents not loaded", http.StatusServiceUnavailable)
		return
	}
	issues := navtree.Check(c)
	if issues == nil {
		issues = []navtree.Issue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pages":  len(c.Pages),
		"issues": issues,
	})
}
