// Package screen owns the display's local state. A single goroutine folds
// auth, stream and timer messages into display.Inputs, reduces them to a
// view model and pushes every changed frame to its subscribers.
package screen

import (
	"context"
	"reflect"
	"time"

	"millionaire-display/internal/countdown"
	"millionaire-display/internal/display"
	"millionaire-display/internal/format"
	"millionaire-display/internal/game"

	"go.uber.org/zap"
)

type Msg interface{ isScreenMsg() }

type AuthChanged struct{ State display.AuthState }

func (AuthChanged) isScreenMsg() {}

type GameStateChanged struct{ Stream display.Stream[game.State] }

func (GameStateChanged) isScreenMsg() {}

type TeamsChanged struct{ Stream display.Stream[[]game.Team] }

func (TeamsChanged) isScreenMsg() {}

type PrizesChanged struct {
	Stream display.Stream[game.PrizeStructure]
}

func (PrizesChanged) isScreenMsg() {}

type ConfigChanged struct{ Stream display.Stream[game.Config] }

func (ConfigChanged) isScreenMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Frame // receives the current frame immediately
}

func (Join) isScreenMsg() {}

type Leave struct{ ClientID string }

func (Leave) isScreenMsg() {}

type GetFrame struct {
	Reply chan Frame
}

func (GetFrame) isScreenMsg() {}

type tick struct{ gen int }

func (tick) isScreenMsg() {}

type revealElapsed struct {
	key string
	gen int
}

func (revealElapsed) isScreenMsg() {}

type stepElapsed struct{ gen int }

func (stepElapsed) isScreenMsg() {}

// Frame is one rendered view model. Version increases by one for every
// frame that differs from the previous one.
type Frame struct {
	Version int
	View    display.ViewModel
}

type Options struct {
	// RevealDelay holds the frozen board before the team result card.
	RevealDelay time.Duration
	// StepInterval paces the initialization stepper.
	StepInterval time.Duration
	Formatter    *format.Formatter
	Now          func() time.Time
	Logger       *zap.Logger
}

type Router struct {
	inbox   chan Msg
	opts    Options
	in      display.Inputs
	frame   Frame
	clients map[string]chan Frame

	seenState  bool
	lastStatus game.Status

	tickGen     int
	ticking     bool
	tickTimer   *time.Timer
	revealGen   int
	revealKey   string
	revealTimer *time.Timer
	stepGen     int
	stepTimer   *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRouter(parent context.Context, opts Options) *Router {
	if opts.Formatter == nil {
		opts.Formatter = format.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.StepInterval <= 0 {
		opts.StepInterval = 900 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(parent)
	r := &Router{
		inbox:   make(chan Msg, 64),
		opts:    opts,
		clients: make(map[string]chan Frame),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	r.in.Auth = display.AuthState{Status: display.AuthConnecting}
	r.in.Local.Phase = display.PhaseLobby
	r.in.Now = opts.Now().UnixMilli()
	r.frame = Frame{View: display.ReduceWith(opts.Formatter, r.in)}

	go r.loop()
	return r
}

// Inbox accepts messages for the router goroutine.
func (r *Router) Inbox() chan<- Msg { return r.inbox }

// Send delivers msg unless the router has stopped.
func (r *Router) Send(msg Msg) {
	select {
	case r.inbox <- msg:
	case <-r.ctx.Done():
	}
}

// Done is closed once the router has shut down.
func (r *Router) Done() <-chan struct{} { return r.done }

// Frame returns the current frame, or false when the router has stopped.
func (r *Router) Frame(ctx context.Context) (Frame, bool) {
	reply := make(chan Frame, 1)
	select {
	case r.inbox <- GetFrame{Reply: reply}:
	case <-r.ctx.Done():
		return Frame{}, false
	case <-ctx.Done():
		return Frame{}, false
	}
	select {
	case f := <-reply:
		return f, true
	case <-r.done:
		return Frame{}, false
	case <-ctx.Done():
		return Frame{}, false
	}
}

func (r *Router) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return
		case m := <-r.inbox:
			r.handle(m)
		}
	}
}

func (r *Router) handle(m Msg) {
	switch msg := m.(type) {
	case Join:
		r.clients[msg.ClientID] = msg.Outbox
		select {
		case msg.Outbox <- r.frame:
		default:
			close(msg.Outbox)
			delete(r.clients, msg.ClientID)
		}
		return
	case Leave:
		if ch, ok := r.clients[msg.ClientID]; ok {
			close(ch)
			delete(r.clients, msg.ClientID)
		}
		return
	case GetFrame:
		msg.Reply <- r.frame
		return

	case AuthChanged:
		r.in.Auth = msg.State
	case GameStateChanged:
		r.in.GameState = msg.Stream
		r.observeStatus(msg.Stream)
	case TeamsChanged:
		r.in.Teams = msg.Stream
	case PrizesChanged:
		r.in.Prizes = msg.Stream
	case ConfigChanged:
		r.in.Config = msg.Stream

	case tick:
		if msg.gen != r.tickGen {
			return
		}
		r.ticking = false
	case revealElapsed:
		if msg.gen != r.revealGen || msg.key != r.revealKey {
			return
		}
		r.in.Local.RevealedKey = msg.key
	case stepElapsed:
		if msg.gen != r.stepGen {
			return
		}
		r.advanceStepper()
	}
	r.recompute()
}

// observeStatus drives the idle sub-phase from game status transitions.
func (r *Router) observeStatus(s display.Stream[game.State]) {
	if s.Status != display.StreamListening {
		return
	}
	status := s.Value.Status
	if !r.seenState {
		r.seenState = true
		r.lastStatus = status
		r.in.Local.Phase = display.InitialPhase(status)
		return
	}
	prev := r.lastStatus
	r.lastStatus = status
	switch {
	case prev == game.StatusNotStarted && status == game.StatusInitialized:
		r.in.Local.Phase = display.PhaseInitializing
		r.in.Local.Stepper = display.Stepper{}
		r.startStepper()
	case status == game.StatusNotStarted && prev != game.StatusNotStarted:
		r.in.Local.Phase = display.PhaseLobby
		r.in.Local.Stepper = display.Stepper{}
		r.stopStepper()
	}
}

func (r *Router) startStepper() {
	r.stepGen++
	r.stepTimer = r.after(r.stepTimer, r.opts.StepInterval, stepElapsed{gen: r.stepGen})
}

func (r *Router) stopStepper() {
	r.stepGen++
	stopTimer(r.stepTimer)
}

func (r *Router) advanceStepper() {
	if r.in.Local.Phase != display.PhaseInitializing {
		return
	}
	r.in.Local.Stepper.Step++
	if r.in.Local.Stepper.Step >= len(display.StepperLabels) {
		r.in.Local.Phase = display.PhaseReady
		return
	}
	r.startStepper()
}

// recompute reduces the current inputs, folds the pass's local side effects
// back in and publishes the result when it changed.
func (r *Router) recompute() {
	r.in.Now = r.opts.Now().UnixMilli()
	vm := display.ReduceWith(r.opts.Formatter, r.in)
	for i := 0; i < 3 && r.settle(vm); i++ {
		vm = display.ReduceWith(r.opts.Formatter, r.in)
	}
	r.scheduleTick(vm)

	if reflect.DeepEqual(vm, r.frame.View) {
		return
	}
	r.frame = Frame{Version: r.frame.Version + 1, View: vm}
	r.broadcast(r.frame)
}

// settle updates frozen retention and the reveal timer for vm. It reports
// whether local state changed in a way that needs another reduce.
func (r *Router) settle(vm display.ViewModel) bool {
	local := &r.in.Local
	if vm.Overlay != display.OverlayTeamResult || vm.OverlayKey == "" {
		changed := local.Frozen != nil || local.RevealedKey != ""
		local.Frozen = nil
		local.RevealedKey = ""
		r.cancelReveal()
		return changed
	}

	key := vm.OverlayKey
	changed := false
	if local.Frozen != nil && local.Frozen.Key != key {
		local.Frozen = nil
		changed = true
	}
	if local.RevealedKey != "" && local.RevealedKey != key {
		local.RevealedKey = ""
		changed = true
	}
	if local.Frozen == nil && vm.Capture != nil && vm.Capture.Key == key {
		local.Frozen = vm.Capture
		changed = true
	}
	if local.RevealedKey == key || r.revealKey == key {
		return changed
	}

	delay := r.opts.RevealDelay
	if r.in.GameState.Value.Status == game.StatusCompleted && local.Frozen == nil {
		delay = 0
	}
	if delay <= 0 {
		r.cancelReveal()
		local.RevealedKey = key
		return true
	}
	r.revealGen++
	r.revealKey = key
	r.revealTimer = r.after(r.revealTimer, delay, revealElapsed{key: key, gen: r.revealGen})
	r.opts.Logger.Debug("team result reveal scheduled", zap.String("key", key), zap.Duration("delay", delay))
	return changed
}

func (r *Router) cancelReveal() {
	if r.revealKey != "" {
		r.revealGen++
		r.revealKey = ""
		stopTimer(r.revealTimer)
	}
}

func (r *Router) scheduleTick(vm display.ViewModel) {
	var cd *countdown.Countdown
	if vm.Game != nil && vm.Game.PhoneAFriend != nil {
		cd = &vm.Game.PhoneAFriend.Countdown
	}
	if cd == nil || !cd.Ticking() {
		if r.ticking {
			r.tickGen++
			r.ticking = false
			stopTimer(r.tickTimer)
		}
		return
	}
	if r.ticking {
		return
	}
	r.tickGen++
	r.ticking = true
	r.tickTimer = r.after(r.tickTimer, nextTick(r.in.GameState.Value.LifelineTimerStartedAt, r.in.Now), tick{gen: r.tickGen})
}

// nextTick aligns re-evaluation with the countdown's whole-second
// boundaries.
func nextTick(startedAt *int64, now int64) time.Duration {
	if startedAt == nil {
		return countdown.Interval
	}
	elapsed := now - *startedAt
	if elapsed < 0 {
		return time.Duration(-elapsed) * time.Millisecond
	}
	step := countdown.Interval.Milliseconds()
	return time.Duration(step-elapsed%step) * time.Millisecond
}

// after replaces prev with a timer that posts msg to the inbox. Messages
// carry a generation so a timer that fires after being replaced is ignored.
func (r *Router) after(prev *time.Timer, d time.Duration, msg Msg) *time.Timer {
	stopTimer(prev)
	return time.AfterFunc(d, func() { r.Send(msg) })
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

func (r *Router) broadcast(f Frame) {
	for id, ch := range r.clients {
		select {
		case ch <- f:
		default:
			r.opts.Logger.Warn("dropping slow subscriber", zap.String("client_id", id))
			close(ch)
			delete(r.clients, id)
		}
	}
}

func (r *Router) shutdown() {
	stopTimer(r.tickTimer)
	stopTimer(r.revealTimer)
	stopTimer(r.stepTimer)
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

// Stop shuts the router down and waits for its goroutine to exit.
func (r *Router) Stop() {
	r.cancel()
	<-r.done
}
