package game

import (
	"encoding/json"
	"testing"

	"millionaire-display/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, raw string) any {
	t.Helper()
	var value any
	require.NoError(t, json.Unmarshal([]byte(raw), &value))
	return normalize.Tree(value)
}

func TestDecodeStateFromWire(t *testing.T) {
	node := normalized(t, `{
		"game-status": "active",
		"current-team-id": "team-2",
		"current-question-number": 3,
		"current-question": {"id": "q3", "text": "Capital of France?", "options": {"a": "Paris", "b": "Lyon", "d": "Nice"}},
		"question-visible": true,
		"options-visible": true,
		"selected-option": "b",
		"correct-option": "A",
		"answer-revealed": true,
		"active-lifeline": "phone-a-friend",
		"lifeline-timer-started-at": 1700000000000,
		"play-queue": {"1": "team-2", "0": "team-1"},
		"display-final-results": false,
		"host-note": "ignored"
	}`)
	state := DecodeState(node)

	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, "team-2", state.CurrentTeamID)
	require.NotNil(t, state.CurrentQuestionNumber)
	assert.Equal(t, 3, *state.CurrentQuestionNumber)
	require.NotNil(t, state.CurrentQuestion)
	assert.Equal(t, "Capital of France?", state.CurrentQuestion.Text)
	text, ok := state.CurrentQuestion.Option(OptionA)
	assert.True(t, ok)
	assert.Equal(t, "Paris", text)
	_, ok = state.CurrentQuestion.Option(OptionC)
	assert.False(t, ok)
	assert.Equal(t, OptionB, state.SelectedOption)
	assert.Equal(t, OptionA, state.CorrectOption)
	assert.True(t, state.AnswerRevealed)
	assert.Equal(t, LifelinePhoneAFriend, state.ActiveLifeline)
	require.NotNil(t, state.LifelineTimerStartedAt)
	assert.Equal(t, int64(1700000000000), *state.LifelineTimerStartedAt)
	assert.Equal(t, []string{"team-1", "team-2"}, state.PlayQueue)
}

func TestDecodeStateAbsentNode(t *testing.T) {
	state := DecodeState(nil)
	assert.Equal(t, StatusNotStarted, state.Status)
	assert.Nil(t, state.CurrentQuestionNumber)
	assert.Nil(t, state.CurrentQuestion)
	assert.Empty(t, state.PlayQueue)
}

func TestDecodeStateTolerance(t *testing.T) {
	node := normalized(t, `{"game-status":"exploded","current-question-number":"7","selected-option":"E","active-lifeline":"ask-the-audience"}`)
	state := DecodeState(node)
	assert.Equal(t, StatusNotStarted, state.Status)
	require.NotNil(t, state.CurrentQuestionNumber)
	assert.Equal(t, 7, *state.CurrentQuestionNumber)
	assert.Equal(t, OptionKey(""), state.SelectedOption)
	assert.Equal(t, Lifeline(""), state.ActiveLifeline)
}

func TestDecodeTeamsOrderedByID(t *testing.T) {
	var raw any
	require.NoError(t, json.Unmarshal([]byte(`{
		"team-2": {"name": "Bravo", "participants": "Ann, Raj", "status": "eliminated", "current-prize": 5000, "lifelines-available": {"phone-a-friend": false, "fifty-fifty": true}},
		"team-1": {"name": "Alpha", "status": "waiting", "current-prize": -4, "phone-a-friend-contact": "+91 98765 43210"}
	}`), &raw))
	teams := DecodeTeams(normalize.Collection(raw))
	require.Len(t, teams, 2)

	assert.Equal(t, "team-1", teams[0].ID)
	assert.Equal(t, float64(0), teams[0].CurrentPrize)
	assert.Equal(t, "+91 98765 43210", teams[0].Contact)

	bravo := teams[1]
	assert.Equal(t, "team-2", bravo.ID)
	assert.Equal(t, TeamEliminated, bravo.Status)
	assert.Equal(t, float64(5000), bravo.CurrentPrize)
	assert.Equal(t, Lifelines{PhoneAFriend: false, FiftyFifty: true}, bravo.LifelinesAvailable)
	assert.Equal(t, []string{"Ann", "Raj"}, bravo.ParticipantNames())
}

func TestDecodeTeamsFromArrayKeepsIDs(t *testing.T) {
	var raw any
	require.NoError(t, json.Unmarshal([]byte(`[null, {"name": "Alpha"}, {"name": "Beta"}]`), &raw))
	teams := DecodeTeams(normalize.Collection(raw))
	require.Len(t, teams, 2)
	assert.Equal(t, "1", teams[0].ID)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.Equal(t, "2", teams[1].ID)
	assert.Equal(t, "Beta", teams[1].Name)
}

func TestDecodePrizes(t *testing.T) {
	prizes := DecodePrizes(normalized(t, `{"0":1000,"1":"2000","2":null,"3":-5}`))
	assert.Equal(t, PrizeStructure{1000, 2000, 0}, prizes)
	assert.Equal(t, float64(2000), prizes.For(2))
	assert.Equal(t, float64(0), prizes.For(0))
	assert.Equal(t, float64(0), prizes.For(9))
	assert.Empty(t, DecodePrizes(nil))
}

func TestDecodeConfigDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), DecodeConfig(nil))

	cfg := DecodeConfig(normalized(t, `{"display-settings":{"show-team-list":false,"animation-duration":250},"timer-duration":0}`))
	assert.True(t, cfg.DisplaySettings.ShowPrizeLadder)
	assert.False(t, cfg.DisplaySettings.ShowTeamList)
	assert.Equal(t, 250, cfg.DisplaySettings.AnimationDuration)
	assert.Equal(t, DefaultTimerDuration, cfg.TimerDuration)
}
