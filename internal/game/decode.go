package game

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"millionaire-display/internal/normalize"
)

// DecodeState reads a normalized game-state node. A nil node is the state of
// a show that has not started.
func DecodeState(node any) State {
	m, _ := node.(map[string]any)
	state := State{Status: StatusNotStarted}
	if m == nil {
		return state
	}
	state.Status = parseStatus(m["gameStatus"])
	state.CurrentTeamID = stringValue(m["currentTeamId"])
	if n, ok := intValue(m["currentQuestionNumber"]); ok {
		state.CurrentQuestionNumber = &n
	}
	state.CurrentQuestion = decodeQuestion(m["currentQuestion"])
	state.QuestionVisible = boolValue(m["questionVisible"])
	state.OptionsVisible = boolValue(m["optionsVisible"])
	state.SelectedOption = parseOption(m["selectedOption"])
	state.CorrectOption = parseOption(m["correctOption"])
	state.AnswerRevealed = boolValue(m["answerRevealed"])
	state.ActiveLifeline = parseLifeline(m["activeLifeline"])
	if ts, ok := int64Value(m["lifelineTimerStartedAt"]); ok {
		state.LifelineTimerStartedAt = &ts
	}
	state.PlayQueue = stringSlice(m["playQueue"])
	state.DisplayFinalResults = boolValue(m["displayFinalResults"])
	return state
}

// DecodeTeams reads the teams node into a slice ordered by id.
func DecodeTeams(node any) []Team {
	teams := make([]Team, 0)
	switch v := node.(type) {
	case map[string]any:
		for id, record := range v {
			if team, ok := decodeTeam(id, record); ok {
				teams = append(teams, team)
			}
		}
	case []any:
		for i, record := range v {
			if team, ok := decodeTeam(strconv.Itoa(i), record); ok {
				teams = append(teams, team)
			}
		}
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].ID < teams[j].ID
	})
	return teams
}

// DecodePrizes reads the prize structure. Non-numeric or negative entries
// count as 0 so later rungs keep their question numbers.
func DecodePrizes(node any) PrizeStructure {
	items, _ := node.([]any)
	prizes := make(PrizeStructure, 0, len(items))
	for _, item := range items {
		value, _ := floatValue(item)
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
		}
		prizes = append(prizes, value)
	}
	return prizes
}

// DecodeConfig reads the config node on top of DefaultConfig.
func DecodeConfig(node any) Config {
	cfg := DefaultConfig()
	m, _ := node.(map[string]any)
	if m == nil {
		return cfg
	}
	if settings, ok := m["displaySettings"].(map[string]any); ok {
		if value, ok := settings["showPrizeLadder"].(bool); ok {
			cfg.DisplaySettings.ShowPrizeLadder = value
		}
		if value, ok := settings["showTeamList"].(bool); ok {
			cfg.DisplaySettings.ShowTeamList = value
		}
		if value, ok := intValue(settings["animationDuration"]); ok && value >= 0 {
			cfg.DisplaySettings.AnimationDuration = value
		}
	}
	if value, ok := intValue(m["timerDuration"]); ok && value > 0 {
		cfg.TimerDuration = value
	}
	return cfg
}

// ParticipantNames splits the comma-separated participants field.
func (t Team) ParticipantNames() []string {
	names := make([]string, 0)
	for _, part := range strings.Split(t.Participants, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func decodeTeam(key string, node any) (Team, bool) {
	m, ok := node.(map[string]any)
	if !ok {
		return Team{}, false
	}
	team := Team{
		ID:      key,
		Name:    stringValue(m["name"]),
		Status:  parseTeamStatus(m["status"]),
		Contact: stringValue(m["phoneAFriendContact"]),
	}
	if id := stringValue(m["id"]); id != "" {
		team.ID = id
	}
	switch participants := m["participants"].(type) {
	case string:
		team.Participants = participants
	case []any:
		team.Participants = strings.Join(stringSlice(participants), ", ")
	}
	if prize, ok := floatValue(m["currentPrize"]); ok && prize > 0 {
		team.CurrentPrize = prize
	}
	if lifelines, ok := m["lifelinesAvailable"].(map[string]any); ok {
		team.LifelinesAvailable.PhoneAFriend = boolValue(lifelines["phoneAFriend"])
		team.LifelinesAvailable.FiftyFifty = boolValue(lifelines["fiftyFifty"])
	}
	return team, true
}

func decodeQuestion(node any) *Question {
	m, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	q := &Question{
		ID:      stringValue(m["id"]),
		Text:    stringValue(m["text"]),
		Options: make(map[OptionKey]string, 4),
	}
	if options, ok := m["options"].(map[string]any); ok {
		for key, value := range options {
			option := parseOption(key)
			if option == "" || value == nil {
				continue
			}
			q.Options[option] = stringValue(value)
		}
	}
	return q
}

func parseStatus(value any) Status {
	switch s := Status(stringValue(value)); s {
	case StatusNotStarted, StatusInitialized, StatusActive, StatusPaused, StatusCompleted:
		return s
	default:
		return StatusNotStarted
	}
}

func parseTeamStatus(value any) TeamStatus {
	switch s := TeamStatus(stringValue(value)); s {
	case TeamWaiting, TeamActive, TeamEliminated, TeamCompleted:
		return s
	default:
		return TeamWaiting
	}
}

func parseOption(value any) OptionKey {
	switch key := OptionKey(strings.ToUpper(strings.TrimSpace(stringValue(value)))); key {
	case OptionA, OptionB, OptionC, OptionD:
		return key
	default:
		return ""
	}
}

func parseLifeline(value any) Lifeline {
	switch normalize.Key(stringValue(value)) {
	case "phoneAFriend":
		return LifelinePhoneAFriend
	case "fiftyFifty":
		return LifelineFiftyFifty
	default:
		return ""
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func intValue(value any) (int, bool) {
	f, ok := floatValue(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func int64Value(value any) (int64, bool) {
	f, ok := floatValue(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func stringSlice(value any) []string {
	items, _ := value.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringValue(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
