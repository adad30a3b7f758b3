package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"millionaire-display/internal/display"
	"millionaire-display/internal/game"
	"millionaire-display/internal/screen"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// newTestDisplay wires a router, a server and its push loop.
func newTestDisplay(t *testing.T) (*screen.Router, *Server, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	router := screen.NewRouter(ctx, screen.Options{})
	srv := New(router, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Run(ctx)
	}()
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-router.Done()
		<-done
	})
	return router, srv, ts
}

func listening[T any](v T) display.Stream[T] {
	return display.Stream[T]{Status: display.StreamListening, Value: v}
}

// goLive brings the router to the lobby with one registered team.
func goLive(router *screen.Router) {
	router.Send(screen.AuthChanged{State: display.AuthState{Status: display.AuthReady}})
	router.Send(screen.TeamsChanged{Stream: listening([]game.Team{{ID: "team-1", Name: "Quiz Wizards", Status: game.TeamWaiting}})})
	router.Send(screen.PrizesChanged{Stream: listening(game.PrizeStructure{1000, 2000})})
	router.Send(screen.ConfigChanged{Stream: listening(game.DefaultConfig())})
	router.Send(screen.GameStateChanged{Stream: listening(game.State{Status: game.StatusNotStarted})})
}
