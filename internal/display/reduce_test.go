package display

import (
	"testing"

	"millionaire-display/internal/countdown"
	"millionaire-display/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = int64(1_700_000_000_000)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func question() *game.Question {
	return &game.Question{
		ID:   "q3",
		Text: "Which planet is known as the Red Planet?",
		Options: map[game.OptionKey]string{
			game.OptionA: "Mars",
			game.OptionB: "Venus",
			game.OptionC: "Jupiter",
			game.OptionD: "Saturn",
		},
	}
}

func prizes() game.PrizeStructure {
	return game.PrizeStructure{1000, 2000, 3000, 5000, 10000, 20000, 40000, 80000, 160000, 320000}
}

// listening returns inputs with auth ready and every stream delivered.
func listening(state game.State, teams ...game.Team) Inputs {
	return Inputs{
		Auth:      AuthState{Status: AuthReady},
		GameState: Stream[game.State]{Status: StreamListening, Value: state},
		Teams:     Stream[[]game.Team]{Status: StreamListening, Value: teams},
		Prizes:    Stream[game.PrizeStructure]{Status: StreamListening, Value: prizes()},
		Config:    Stream[game.Config]{Status: StreamListening, Value: game.DefaultConfig()},
		Now:       testNow,
	}
}

func TestReduceColdStartAuthenticating(t *testing.T) {
	vm := Reduce(Inputs{Auth: AuthState{Status: AuthConnecting}})
	assert.Equal(t, ScreenLoading, vm.Screen)
	require.NotNil(t, vm.Loading)
	assert.Equal(t, "Authenticating…", vm.Loading.Message)
	assert.Nil(t, vm.Game)
	assert.Nil(t, vm.Idle)
}

func TestReduceAuthErrorIsLoadingWithMessage(t *testing.T) {
	vm := Reduce(Inputs{Auth: AuthState{Status: AuthError, Err: "ADMIN_ONLY_OPERATION"}})
	assert.Equal(t, ScreenLoading, vm.Screen)
	assert.Equal(t, "ADMIN_ONLY_OPERATION", vm.Loading.Err)
	assert.Equal(t, "auth", vm.Loading.Stream)
}

func TestReduceWaitsForEveryStream(t *testing.T) {
	in := listening(game.State{Status: game.StatusNotStarted})
	in.Prizes.Status = StreamConnecting
	vm := Reduce(in)
	assert.Equal(t, ScreenLoading, vm.Screen)
	assert.Equal(t, "prize-structure", vm.Loading.Stream)
}

func TestReduceStreamErrorKeepsData(t *testing.T) {
	in := listening(game.State{Status: game.StatusActive, CurrentQuestionNumber: intPtr(2)})
	in.Teams.Status = StreamError
	in.Teams.Err = "permission denied"
	in.Teams.Value = []game.Team{{ID: "team-1", Name: "Alpha"}}

	vm := Reduce(in)
	assert.Equal(t, ScreenLoading, vm.Screen)
	assert.Equal(t, "permission denied", vm.Loading.Err)
	assert.Len(t, in.Teams.Value, 1)

	in.Teams.Status = StreamListening
	vm = Reduce(in)
	assert.Equal(t, ScreenGame, vm.Screen)
}

func TestReduceLobbyWithoutTeams(t *testing.T) {
	vm := Reduce(listening(game.State{Status: game.StatusNotStarted}))
	assert.Equal(t, ScreenIdle, vm.Screen)
	require.NotNil(t, vm.Idle)
	assert.Equal(t, PhaseLobby, vm.Idle.Phase)
	assert.Equal(t, "Get Ready to Play", vm.Idle.Heading)
	assert.True(t, vm.Idle.NoTeams)
	assert.Empty(t, vm.Idle.Teams)
}

func TestReduceLobbyRoster(t *testing.T) {
	vm := Reduce(listening(game.State{Status: game.StatusNotStarted},
		game.Team{ID: "team-1", Name: "Alpha", Status: game.TeamWaiting}))
	assert.Equal(t, ScreenIdle, vm.Screen)
	assert.Equal(t, PhaseLobby, vm.Idle.Phase)
	require.Len(t, vm.Idle.Teams, 1)
	assert.Equal(t, "Alpha", vm.Idle.Teams[0].Name)
	assert.Equal(t, "Rs. 0.00", vm.Idle.Teams[0].Prize)
	assert.False(t, vm.Idle.NoTeams)
}

func TestReduceIdlePhases(t *testing.T) {
	in := listening(game.State{Status: game.StatusInitialized})
	vm := Reduce(in)
	assert.Equal(t, PhaseReady, vm.Idle.Phase, "late joiner skips the stepper")

	in.Local.Phase = PhaseInitializing
	in.Local.Stepper.Step = 2
	vm = Reduce(in)
	assert.Equal(t, PhaseInitializing, vm.Idle.Phase)
	require.Len(t, vm.Idle.Steps, len(StepperLabels))
	assert.True(t, vm.Idle.Steps[1].Done)
	assert.True(t, vm.Idle.Steps[2].Active)
	assert.False(t, vm.Idle.Steps[3].Done)
}

func TestReduceWrongAnswerRevealDuringDelay(t *testing.T) {
	state := game.State{
		Status:                game.StatusActive,
		CurrentTeamID:         "team-1",
		CurrentQuestionNumber: intPtr(3),
		CurrentQuestion:       question(),
		QuestionVisible:       true,
		OptionsVisible:        true,
		AnswerRevealed:        true,
		SelectedOption:        game.OptionB,
		CorrectOption:         game.OptionA,
		PlayQueue:             []string{"team-1"},
	}
	team := game.Team{ID: "team-1", Name: "Alpha", Status: game.TeamEliminated, CurrentPrize: 2000}
	vm := Reduce(listening(state, team))

	assert.Equal(t, ScreenGame, vm.Screen)
	assert.Equal(t, OverlayTeamResult, vm.Overlay)
	assert.Equal(t, "team-result:team-1:eliminated", vm.OverlayKey)
	require.NotNil(t, vm.Capture)
	assert.Equal(t, vm.OverlayKey, vm.Capture.Key)

	gv := vm.Game
	require.NotNil(t, gv.TeamResult)
	assert.False(t, gv.TeamResult.CardVisible)
	assert.Equal(t, "eliminated", gv.TeamResult.Outcome)
	require.NotNil(t, gv.Question)
	assert.True(t, gv.QuestionVisible)
	assert.True(t, gv.OptionsVisible)
	states := map[game.OptionKey]OptionState{}
	for _, option := range gv.Question.Options {
		states[option.Key] = option.State
	}
	assert.Equal(t, map[game.OptionKey]OptionState{
		game.OptionA: OptionCorrect,
		game.OptionB: OptionWrong,
		game.OptionC: OptionDimmed,
		game.OptionD: OptionDimmed,
	}, states)
}

func TestReduceFrozenBoardSurvivesHostClear(t *testing.T) {
	team := game.Team{ID: "team-1", Name: "Alpha", Status: game.TeamEliminated}
	revealed := game.State{
		Status:                game.StatusActive,
		CurrentTeamID:         "team-1",
		CurrentQuestionNumber: intPtr(3),
		CurrentQuestion:       question(),
		AnswerRevealed:        true,
		SelectedOption:        game.OptionB,
		CorrectOption:         game.OptionA,
	}
	first := Reduce(listening(revealed, team))
	require.NotNil(t, first.Capture)

	// The host's next write nulls the board but the game is completed.
	cleared := game.State{Status: game.StatusCompleted, PlayQueue: []string{"team-1"}}
	in := listening(cleared, team)
	in.Local.Frozen = first.Capture
	vm := Reduce(in)

	assert.Equal(t, OverlayTeamResult, vm.Overlay)
	assert.Equal(t, first.Capture.Key, vm.OverlayKey)
	assert.True(t, vm.Game.Frozen)
	require.NotNil(t, vm.Game.Question)
	assert.Equal(t, "q3", vm.Game.Question.ID)
	assert.True(t, vm.Game.QuestionVisible)

	in.Local.RevealedKey = vm.OverlayKey
	vm = Reduce(in)
	assert.True(t, vm.Game.TeamResult.CardVisible)
	assert.False(t, vm.Game.Frozen)
	assert.Nil(t, vm.Game.Question)
}

func TestReduceFrozenIgnoredForOtherKey(t *testing.T) {
	team := game.Team{ID: "team-2", Name: "Bravo", Status: game.TeamCompleted}
	in := listening(game.State{Status: game.StatusCompleted, PlayQueue: []string{"team-1", "team-2"}}, team)
	in.Local.Frozen = &FrozenGameplay{Key: "team-result:team-1:eliminated", CurrentQuestion: question()}
	vm := Reduce(in)
	assert.Equal(t, "team-result:team-2:completed", vm.OverlayKey)
	assert.False(t, vm.Game.Frozen)
}

func TestReducePhoneAFriendLateJoiner(t *testing.T) {
	state := game.State{
		Status:                 game.StatusPaused,
		CurrentTeamID:          "team-1",
		CurrentQuestionNumber:  intPtr(4),
		ActiveLifeline:         game.LifelinePhoneAFriend,
		LifelineTimerStartedAt: int64Ptr(testNow - 25_000),
	}
	team := game.Team{ID: "team-1", Name: "Alpha", Status: game.TeamActive, Contact: "+91 98765 43210"}
	vm := Reduce(listening(state, team))

	assert.Equal(t, OverlayPhoneAFriend, vm.Overlay)
	require.NotNil(t, vm.Game.PhoneAFriend)
	c := vm.Game.PhoneAFriend.Countdown
	assert.Equal(t, 5, c.Remaining)
	assert.True(t, c.IsExpiring)
	assert.Equal(t, "00:05", c.Display)
	assert.InDelta(t, 0.167, c.Progress, 0.001)
	assert.Equal(t, "+•• ••••• ••210", vm.Game.PhoneAFriend.Contact)
}

func TestReducePhoneAFriendNotStarted(t *testing.T) {
	state := game.State{Status: game.StatusPaused, ActiveLifeline: game.LifelinePhoneAFriend}
	vm := Reduce(listening(state))
	assert.Equal(t, OverlayPhoneAFriend, vm.Overlay)
	assert.Equal(t, countdown.PhaseNotStarted, vm.Game.PhoneAFriend.Countdown.Phase)
	assert.Equal(t, 30, vm.Game.PhoneAFriend.Countdown.Remaining)
}

func TestReduceGameOverFallsBackToLastQueuedTeam(t *testing.T) {
	state := game.State{Status: game.StatusCompleted, PlayQueue: []string{"team-1", "team-2"}}
	teams := []game.Team{
		{ID: "team-1", Name: "Alpha", Status: game.TeamEliminated, CurrentPrize: 3000},
		{ID: "team-2", Name: "Bravo", Status: game.TeamCompleted, CurrentPrize: 320000},
	}
	vm := Reduce(listening(state, teams...))
	assert.Equal(t, OverlayTeamResult, vm.Overlay)
	require.NotNil(t, vm.Game.TeamResult.Team)
	assert.Equal(t, "team-2", vm.Game.TeamResult.Team.ID)
	assert.Equal(t, "won", vm.Game.TeamResult.Outcome)

	state.DisplayFinalResults = true
	vm = Reduce(listening(state, teams...))
	assert.Equal(t, ScreenResults, vm.Screen)
	assert.Equal(t, OverlayNone, vm.Overlay)
	require.Len(t, vm.Results.Ranking, 2)
	assert.Equal(t, "team-2", vm.Results.Ranking[0].Team.ID)
	assert.Equal(t, 1, vm.Results.Ranking[0].Rank)
	assert.Equal(t, 2, vm.Results.Ranking[1].Rank)
}

func TestReduceAnnouncement(t *testing.T) {
	teams := []game.Team{{ID: "team-1", Name: "Alpha"}, {ID: "team-2", Name: "Bravo"}}
	for _, number := range []*int{nil, intPtr(0)} {
		state := game.State{Status: game.StatusActive, CurrentTeamID: "team-2", CurrentQuestionNumber: number, PlayQueue: []string{"team-2", "team-1"}}
		vm := Reduce(listening(state, teams...))
		assert.Equal(t, OverlayAnnouncement, vm.Overlay)
		require.NotNil(t, vm.Game.Announcement)
		assert.Equal(t, 1, vm.Game.Announcement.QueuePosition)
		assert.Equal(t, 2, vm.Game.Announcement.QueueLength)
		assert.Equal(t, "Bravo", vm.Game.Announcement.Team.Name)
	}
}

func TestReduceBetweenQuestions(t *testing.T) {
	state := game.State{Status: game.StatusActive, CurrentTeamID: "team-1", CurrentQuestionNumber: intPtr(2), CurrentQuestion: question()}
	vm := Reduce(listening(state, game.Team{ID: "team-1", Status: game.TeamActive}))
	assert.Equal(t, OverlayNone, vm.Overlay)
	assert.True(t, vm.Game.BetweenQuestions)

	state.QuestionVisible = true
	vm = Reduce(listening(state, game.Team{ID: "team-1", Status: game.TeamActive}))
	assert.False(t, vm.Game.BetweenQuestions)
	assert.Equal(t, "Question 2 of 10", vm.Game.QuestionLabel)
	assert.Equal(t, "Rs. 2,000.00", vm.Game.QuestionPrize)
}

func TestReduceOutOfRangeQuestion(t *testing.T) {
	state := game.State{Status: game.StatusActive, CurrentQuestionNumber: intPtr(42), QuestionVisible: true}
	vm := Reduce(listening(state))
	assert.Equal(t, "—", vm.Game.QuestionLabel)
	assert.Equal(t, "Rs. 0.00", vm.Game.QuestionPrize)
}

func TestReduceLadderAndTeamListSettings(t *testing.T) {
	state := game.State{Status: game.StatusActive, CurrentTeamID: "team-1", CurrentQuestionNumber: intPtr(6), QuestionVisible: true}
	in := listening(state, game.Team{ID: "team-1", Name: "Alpha"})
	vm := Reduce(in)
	require.Len(t, vm.Game.Ladder, 10)
	top := vm.Game.Ladder[0]
	assert.Equal(t, 10, top.Number)
	assert.True(t, top.Milestone)
	rung6 := vm.Game.Ladder[4]
	assert.Equal(t, 6, rung6.Number)
	assert.True(t, rung6.Current)
	assert.True(t, vm.Game.Ladder[5].Passed)
	require.Len(t, vm.Game.TeamList, 1)
	assert.True(t, vm.Game.TeamList[0].Current)

	in.Config.Value.DisplaySettings.ShowPrizeLadder = false
	in.Config.Value.DisplaySettings.ShowTeamList = false
	vm = Reduce(in)
	assert.Empty(t, vm.Game.Ladder)
	assert.Empty(t, vm.Game.TeamList)

	in = listening(state)
	in.Prizes.Value = nil
	vm = Reduce(in)
	assert.Empty(t, vm.Game.Ladder)
	assert.Equal(t, "Rs. 0.00", vm.Game.QuestionPrize)
}

func TestReduceIsDeterministic(t *testing.T) {
	state := game.State{
		Status:                game.StatusActive,
		CurrentTeamID:         "team-1",
		CurrentQuestionNumber: intPtr(3),
		CurrentQuestion:       question(),
		QuestionVisible:       true,
		OptionsVisible:        true,
		SelectedOption:        game.OptionC,
		PlayQueue:             []string{"team-1", "team-2"},
	}
	teams := []game.Team{{ID: "team-2", Name: "Bravo"}, {ID: "team-1", Name: "Alpha", Status: game.TeamActive}}
	assert.Equal(t, Reduce(listening(state, teams...)), Reduce(listening(state, teams...)))
}

func TestReduceExactlyOneScreen(t *testing.T) {
	statuses := []game.Status{game.StatusNotStarted, game.StatusInitialized, game.StatusActive, game.StatusPaused, game.StatusCompleted}
	for _, status := range statuses {
		for _, final := range []bool{false, true} {
			vm := Reduce(listening(game.State{Status: status, DisplayFinalResults: final}))
			set := 0
			for _, present := range []bool{vm.Loading != nil, vm.Idle != nil, vm.Game != nil, vm.Results != nil} {
				if present {
					set++
				}
			}
			assert.Equal(t, 1, set, "status=%s final=%v", status, final)
			if vm.Screen != ScreenGame {
				assert.Equal(t, OverlayNone, vm.Overlay)
			}
		}
	}
}
