// Package server is the display's HTTP surface: the full-window page, the
// push socket that streams rendered frames, and a few JSON endpoints.
package server

import (
	"context"
	"net/http"

	"millionaire-display/internal/screen"
	"millionaire-display/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FrameSource is the screen router as seen by the HTTP surface.
type FrameSource interface {
	Send(msg screen.Msg)
	Frame(ctx context.Context) (screen.Frame, bool)
	Done() <-chan struct{}
}

type Server struct {
	frames  FrameSource
	ws      *wsHub
	metrics *Metrics
	page    web.PageOptions
	logger  *zap.Logger
}

func New(frames FrameSource, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := NewMetrics()
	return &Server{
		frames:  frames,
		ws:      newWSHub(metrics, logger),
		metrics: metrics,
		page:    web.DefaultPageOptions(),
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/display", http.StatusFound)
	})
	r.Get("/display", s.handleDisplayView)
	r.Get("/ws/display", s.handleWebsocket)
	r.Get("/api/view", s.handleView)
	r.Get("/api/metrics", s.handleMetrics)
	r.Get("/healthz", s.handleHealthz)
	return r
}

// Run subscribes to the router and pushes every frame to connected
// displays until ctx ends or the router stops.
func (s *Server) Run(ctx context.Context) error {
	for {
		clientID := uuid.NewString()
		out := make(chan screen.Frame, 16)
		s.frames.Send(screen.Join{ClientID: clientID, Outbox: out})
		if !s.pump(ctx, clientID, out) {
			return nil
		}
		s.logger.Warn("frame subscription dropped, rejoining", zap.String("client_id", clientID))
	}
}

// pump reports whether the subscription should be renewed.
func (s *Server) pump(ctx context.Context, clientID string, out <-chan screen.Frame) bool {
	for {
		select {
		case <-ctx.Done():
			s.frames.Send(screen.Leave{ClientID: clientID})
			return false
		case <-s.frames.Done():
			return false
		case f, ok := <-out:
			if !ok {
				select {
				case <-ctx.Done():
					return false
				case <-s.frames.Done():
					return false
				default:
					return true
				}
			}
			s.publish(f)
		}
	}
}

func (s *Server) publish(f screen.Frame) {
	s.metrics.RecordFrame(f.Version)
	s.ws.Broadcast(s.renderFrameMessages(f)...)
}
