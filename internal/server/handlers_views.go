package server

import (
	"net/http"

	"millionaire-display/internal/display"
	"millionaire-display/internal/web"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

func (s *Server) handleDisplayView(w http.ResponseWriter, r *http.Request) {
	f, ok := s.frames.Frame(r.Context())
	if !ok {
		s.logger.Warn("display view without frame", zap.String("remote", r.RemoteAddr))
		writeError(w, http.StatusServiceUnavailable, "display is shutting down")
		return
	}
	templ.Handler(web.Page(s.page, f.View)).ServeHTTP(w, r)
}

type viewResponse struct {
	Version int               `json:"version"`
	View    display.ViewModel `json:"view"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	f, ok := s.frames.Frame(r.Context())
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "display is shutting down")
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Version: f.Version, View: f.View})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.frames.Done():
		writeError(w, http.StatusServiceUnavailable, "router stopped")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
