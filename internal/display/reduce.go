package display

import (
	"millionaire-display/internal/format"
	"millionaire-display/internal/game"
)

const (
	msgAuthenticating = "Authenticating…"
	msgAuthFailed     = "Unable to sign in to the game server"
	msgConnecting     = "Connecting to the game…"
	msgStreamFailed   = "Lost connection to the game"
	questionSentinel  = "—"
)

// Reduce derives the view model. It never panics on malformed snapshots.
func Reduce(in Inputs) ViewModel {
	return ReduceWith(format.Default(), in)
}

// ReduceWith is Reduce with an explicit prize formatter.
func ReduceWith(f *format.Formatter, in Inputs) ViewModel {
	cfg := in.Config.Value
	if cfg.TimerDuration <= 0 {
		cfg = game.DefaultConfig()
	}
	vm := ViewModel{Settings: cfg.DisplaySettings}

	if loading := loadingView(in); loading != nil {
		vm.Screen = ScreenLoading
		vm.Loading = loading
		return vm
	}

	state := in.GameState.Value
	board := newRoster(f, in.Teams.Value, state)

	switch {
	case state.DisplayFinalResults:
		vm.Screen = ScreenResults
		vm.Results = &ResultsView{
			Heading: "Final Results",
			Ranking: board.ranking(),
		}
	case state.Status == game.StatusActive || state.Status == game.StatusPaused || state.Status == game.StatusCompleted:
		vm.Screen = ScreenGame
		reduceGame(f, &vm, in, cfg, board)
	default:
		vm.Screen = ScreenIdle
		vm.Idle = idleView(in.Local, state, board)
	}
	return vm
}

// loadingView returns nil once auth is ready and every stream is listening.
func loadingView(in Inputs) *LoadingView {
	switch in.Auth.Status {
	case AuthReady:
	case AuthError:
		return &LoadingView{Message: msgAuthFailed, Err: in.Auth.Err, Stream: "auth"}
	default:
		return &LoadingView{Message: msgAuthenticating}
	}
	streams := []struct {
		name   string
		status StreamStatus
		err    string
	}{
		{"game-state", in.GameState.Status, in.GameState.Err},
		{"teams", in.Teams.Status, in.Teams.Err},
		{"prize-structure", in.Prizes.Status, in.Prizes.Err},
		{"config", in.Config.Status, in.Config.Err},
	}
	for _, s := range streams {
		if s.status == StreamError {
			return &LoadingView{Message: msgStreamFailed, Err: s.err, Stream: s.name}
		}
	}
	for _, s := range streams {
		if s.status != StreamListening {
			return &LoadingView{Message: msgConnecting, Stream: s.name}
		}
	}
	return nil
}

func reduceGame(f *format.Formatter, vm *ViewModel, in Inputs, cfg game.Config, board roster) {
	state := in.GameState.Value
	prizes := in.Prizes.Value
	current := board.find(state.CurrentTeamID)

	overlay := SelectOverlay(state, current)
	vm.Overlay = overlay
	vm.Capture = Capture(state, current)

	gv := &GameView{
		QueuePosition:  queuePosition(state.PlayQueue, state.CurrentTeamID),
		QueueLength:    board.queueLength(),
		ActiveLifeline: state.ActiveLifeline,
	}
	if current != nil {
		card := board.card(*current)
		gv.Team = &card
	}

	number := 0
	if state.CurrentQuestionNumber != nil {
		number = *state.CurrentQuestionNumber
	}
	gv.QuestionNumber = number
	gv.QuestionLabel = questionLabel(number, len(prizes))
	gv.QuestionPrize = f.Prize(prizes.For(number))

	live := FrozenGameplay{
		CurrentQuestion: state.CurrentQuestion,
		SelectedOption:  state.SelectedOption,
		CorrectOption:   state.CorrectOption,
		AnswerRevealed:  state.AnswerRevealed,
		ActiveLifeline:  state.ActiveLifeline,
	}
	questionVisible, optionsVisible := state.QuestionVisible, state.OptionsVisible
	shown := live

	switch overlay {
	case OverlayAnnouncement:
		gv.Announcement = &AnnouncementView{
			Heading:       "Next Team",
			Team:          gv.Team,
			QueuePosition: gv.QueuePosition,
			QueueLength:   gv.QueueLength,
		}
	case OverlayPause:
		gv.Pause = &PauseView{
			Heading: "Game Paused",
			Message: "The show will resume shortly",
		}
	case OverlayPhoneAFriend:
		view := &PhoneAFriendView{
			Team:      gv.Team,
			Countdown: PhoneAFriendCountdown(state, cfg, in.Now),
		}
		if current != nil && current.Contact != "" {
			view.Contact = format.MaskContact(current.Contact)
		}
		gv.PhoneAFriend = view
	case OverlayTeamResult:
		team := ResultTeam(state, board.teams, overlay)
		key := ResultKey("", "")
		view := &TeamResultView{Prize: f.Prize(0), PrizeShort: format.PrizeShort(0)}
		if team != nil {
			key = ResultKey(team.ID, team.Status)
			card := board.card(*team)
			view.Team = &card
			view.Outcome = outcome(team.Status)
			view.Prize = card.Prize
			view.PrizeShort = card.PrizeShort
		}
		vm.OverlayKey = key
		view.CardVisible = in.Local.RevealedKey == key
		gv.TeamResult = view

		if !view.CardVisible {
			if frozen := pickFrozen(key, in.Local.Frozen, vm.Capture); frozen != nil {
				shown = *frozen
				questionVisible, optionsVisible = true, true
				gv.Frozen = true
			}
		}
	}

	gv.QuestionVisible = questionVisible
	gv.OptionsVisible = optionsVisible
	gv.BetweenQuestions = overlay == OverlayNone && !questionVisible
	if shown.CurrentQuestion != nil {
		gv.Question = &QuestionView{
			ID:      shown.CurrentQuestion.ID,
			Text:    shown.CurrentQuestion.Text,
			Options: OptionStates(shown.CurrentQuestion, shown.SelectedOption, shown.CorrectOption, shown.AnswerRevealed),
		}
	}
	if gv.Frozen {
		gv.ActiveLifeline = shown.ActiveLifeline
	}

	if cfg.DisplaySettings.ShowPrizeLadder && len(prizes) > 0 {
		gv.Ladder = Ladder(f, prizes, number)
	}
	if cfg.DisplaySettings.ShowTeamList {
		gv.TeamList = board.cards()
	}
	vm.Game = gv
}

func pickFrozen(key string, retained, captured *FrozenGameplay) *FrozenGameplay {
	if retained != nil && retained.Key == key {
		return retained
	}
	if captured != nil && captured.Key == key {
		return captured
	}
	return nil
}

func outcome(status game.TeamStatus) string {
	switch status {
	case game.TeamCompleted:
		return "won"
	case game.TeamEliminated:
		return "eliminated"
	default:
		return "finished"
	}
}

func queuePosition(queue []string, teamID string) int {
	if teamID == "" {
		return 0
	}
	for i, id := range queue {
		if id == teamID {
			return i + 1
		}
	}
	return 0
}
