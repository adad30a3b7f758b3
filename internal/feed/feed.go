// Package feed connects the database listeners to the screen router.
package feed

import (
	"context"
	"time"

	"millionaire-display/internal/display"
	"millionaire-display/internal/game"
	"millionaire-display/internal/normalize"
	"millionaire-display/internal/rtdb"
	"millionaire-display/internal/screen"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PathGameState      = "game-state"
	PathTeams          = "teams"
	PathPrizeStructure = "prize-structure"
	PathConfig         = "config"
)

type SignIner interface {
	SignIn(ctx context.Context) error
}

type Sink interface {
	Send(msg screen.Msg)
}

type Session struct {
	auth       SignIner
	client     *rtdb.Client
	sink       Sink
	logger     *zap.Logger
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewSession(auth SignIner, client *rtdb.Client, sink Sink, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		auth:       auth,
		client:     client,
		sink:       sink,
		logger:     logger,
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
	}
}

// Run signs in, then streams every path into the sink until ctx ends.
// Listeners report idle until sign-in succeeds.
func (s *Session) Run(ctx context.Context) error {
	bindings := []struct {
		path    string
		forward func(rtdb.Snapshot)
	}{
		{PathGameState, func(snap rtdb.Snapshot) {
			s.sink.Send(screen.GameStateChanged{Stream: convert(snap, normalize.Tree, game.DecodeState)})
		}},
		{PathTeams, func(snap rtdb.Snapshot) {
			s.sink.Send(screen.TeamsChanged{Stream: convert(snap, normalize.Collection, game.DecodeTeams)})
		}},
		{PathPrizeStructure, func(snap rtdb.Snapshot) {
			s.sink.Send(screen.PrizesChanged{Stream: convert(snap, normalize.Tree, game.DecodePrizes)})
		}},
		{PathConfig, func(snap rtdb.Snapshot) {
			s.sink.Send(screen.ConfigChanged{Stream: convert(snap, normalize.Tree, game.DecodeConfig)})
		}},
	}

	listeners := make([]*rtdb.Listener, 0, len(bindings))
	for _, b := range bindings {
		l := s.client.Listen(b.path)
		forward := b.forward
		last := rtdb.Status("")
		unsubscribe := l.Subscribe(func(snap rtdb.Snapshot) {
			if snap.Status != last {
				s.logStatus(snap)
				last = snap.Status
			}
			forward(snap)
		})
		defer unsubscribe()
		listeners = append(listeners, l)
	}

	if !s.signIn(ctx) {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		g.Go(func() error {
			return l.Run(gctx)
		})
	}
	return g.Wait()
}

// signIn retries until it succeeds or ctx ends. It reports whether the
// session is signed in.
func (s *Session) signIn(ctx context.Context) bool {
	s.sink.Send(screen.AuthChanged{State: display.AuthState{Status: display.AuthConnecting}})
	backoff := s.minBackoff
	for {
		err := s.auth.SignIn(ctx)
		if err == nil {
			s.logger.Info("signed in anonymously")
			s.sink.Send(screen.AuthChanged{State: display.AuthState{Status: display.AuthReady}})
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		s.logger.Error("sign-in failed", zap.Error(err), zap.Duration("retry_in", backoff))
		s.sink.Send(screen.AuthChanged{State: display.AuthState{Status: display.AuthError, Err: err.Error()}})

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
		backoff = min(backoff*2, s.maxBackoff)
	}
}

func (s *Session) logStatus(snap rtdb.Snapshot) {
	fields := []zap.Field{zap.String("path", snap.Path), zap.String("status", string(snap.Status))}
	if snap.Err != nil {
		s.logger.Warn("stream status", append(fields, zap.Error(snap.Err))...)
		return
	}
	s.logger.Info("stream status", fields...)
}

// convert maps a raw snapshot onto the typed stream the reducer reads. An
// absent node decodes to the type's empty value.
func convert[T any](snap rtdb.Snapshot, shape func(any) any, decode func(any) T) display.Stream[T] {
	out := display.Stream[T]{
		Status: streamStatus(snap.Status),
		Value:  decode(shape(snap.Value)),
	}
	if snap.Err != nil {
		out.Err = snap.Err.Error()
	}
	return out
}

func streamStatus(s rtdb.Status) display.StreamStatus {
	switch s {
	case rtdb.StatusConnecting:
		return display.StreamConnecting
	case rtdb.StatusListening:
		return display.StreamListening
	case rtdb.StatusError:
		return display.StreamError
	default:
		return display.StreamIdle
	}
}
