// Package display maps the latest database snapshots, local time and the
// router's local state onto a fully specified screen. Reduce is pure: equal
// inputs always produce equal view models.
package display

import "millionaire-display/internal/game"

type StreamStatus string

const (
	StreamIdle       StreamStatus = "idle"
	StreamConnecting StreamStatus = "connecting"
	StreamListening  StreamStatus = "listening"
	StreamError      StreamStatus = "error"
)

type AuthStatus string

const (
	AuthConnecting AuthStatus = "connecting"
	AuthReady      AuthStatus = "ready"
	AuthError      AuthStatus = "error"
)

type AuthState struct {
	Status AuthStatus
	Err    string
}

// Stream is the last value seen on one database subscription. Value is kept
// when the stream later reports an error.
type Stream[T any] struct {
	Status StreamStatus
	Value  T
	Err    string
}

type Screen string

const (
	ScreenLoading Screen = "loading"
	ScreenIdle    Screen = "idle"
	ScreenGame    Screen = "game"
	ScreenResults Screen = "results"
)

type Overlay string

const (
	OverlayNone         Overlay = ""
	OverlayAnnouncement Overlay = "announcement"
	OverlayPhoneAFriend Overlay = "phoneAFriend"
	OverlayPause        Overlay = "pause"
	OverlayTeamResult   Overlay = "teamResult"
)

type IdlePhase string

const (
	PhaseLobby        IdlePhase = "lobby"
	PhaseInitializing IdlePhase = "initializing"
	PhaseReady        IdlePhase = "ready"
)

type OptionState string

const (
	OptionDefault  OptionState = "default"
	OptionSelected OptionState = "selected"
	OptionCorrect  OptionState = "correct"
	OptionWrong    OptionState = "wrong"
	OptionDimmed   OptionState = "dimmed"
	OptionRemoved  OptionState = "removed"
)

// FrozenGameplay is the question board as it stood when a team's run ended.
// The host clears these fields right after the reveal; the display keeps
// showing them until the result card takes over.
type FrozenGameplay struct {
	Key             string         `json:"key"`
	CurrentQuestion *game.Question `json:"currentQuestion"`
	SelectedOption  game.OptionKey `json:"selectedOption"`
	CorrectOption   game.OptionKey `json:"correctOption"`
	AnswerRevealed  bool           `json:"answerRevealed"`
	ActiveLifeline  game.Lifeline  `json:"activeLifeline"`
}

// Stepper is the progress of the initialization sequence on the idle
// screen.
type Stepper struct {
	Step int
}

// Local is the display-only state owned by the screen router.
type Local struct {
	Phase IdlePhase
	// Frozen is the retained capture, if any.
	Frozen *FrozenGameplay
	// RevealedKey is the team-result key whose reveal delay has elapsed.
	RevealedKey string
	Stepper     Stepper
}

type Inputs struct {
	Auth      AuthState
	GameState Stream[game.State]
	Teams     Stream[[]game.Team]
	Prizes    Stream[game.PrizeStructure]
	Config    Stream[game.Config]
	Local     Local
	// Now is the wall clock in unix milliseconds.
	Now int64
}
