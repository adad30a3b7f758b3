// Package game holds the show entities written by the host panel, decoded
// from normalized database snapshots.
package game

type Status string

const (
	StatusNotStarted  Status = "not-started"
	StatusInitialized Status = "initialized"
	StatusActive      Status = "active"
	StatusPaused      Status = "paused"
	StatusCompleted   Status = "completed"
)

type TeamStatus string

const (
	TeamWaiting    TeamStatus = "waiting"
	TeamActive     TeamStatus = "active"
	TeamEliminated TeamStatus = "eliminated"
	TeamCompleted  TeamStatus = "completed"
)

// Terminal reports whether a team has finished its run.
func (s TeamStatus) Terminal() bool {
	return s == TeamEliminated || s == TeamCompleted
}

type OptionKey string

const (
	OptionA OptionKey = "A"
	OptionB OptionKey = "B"
	OptionC OptionKey = "C"
	OptionD OptionKey = "D"
)

// OptionKeys is the render order of answer options.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

type Lifeline string

const (
	LifelinePhoneAFriend Lifeline = "phone-a-friend"
	LifelineFiftyFifty   Lifeline = "fifty-fifty"
)

type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Options holds the text per key. A key missing from the map was removed
	// by the 50/50 lifeline.
	Options map[OptionKey]string `json:"options"`
}

// Option returns the text for key and whether the option is still on the
// board.
func (q *Question) Option(key OptionKey) (string, bool) {
	if q == nil || q.Options == nil {
		return "", false
	}
	text, ok := q.Options[key]
	return text, ok
}

type State struct {
	Status                 Status    `json:"gameStatus"`
	CurrentTeamID          string    `json:"currentTeamId,omitempty"`
	CurrentQuestionNumber  *int      `json:"currentQuestionNumber"`
	CurrentQuestion        *Question `json:"currentQuestion"`
	QuestionVisible        bool      `json:"questionVisible"`
	OptionsVisible         bool      `json:"optionsVisible"`
	SelectedOption         OptionKey `json:"selectedOption,omitempty"`
	CorrectOption          OptionKey `json:"correctOption,omitempty"`
	AnswerRevealed         bool      `json:"answerRevealed"`
	ActiveLifeline         Lifeline  `json:"activeLifeline,omitempty"`
	LifelineTimerStartedAt *int64    `json:"lifelineTimerStartedAt"`
	PlayQueue              []string  `json:"playQueue"`
	DisplayFinalResults    bool      `json:"displayFinalResults"`
}

type Lifelines struct {
	PhoneAFriend bool `json:"phoneAFriend"`
	FiftyFifty   bool `json:"fiftyFifty"`
}

type Team struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Participants       string     `json:"participants"`
	Status             TeamStatus `json:"status"`
	CurrentPrize       float64    `json:"currentPrize"`
	LifelinesAvailable Lifelines  `json:"lifelinesAvailable"`
	Contact            string     `json:"phoneAFriendContact,omitempty"`
}

// PrizeStructure holds the prize for question i+1 at index i.
type PrizeStructure []float64

// For returns the prize for a 1-based question number, or 0 when the ladder
// has no such rung.
func (p PrizeStructure) For(question int) float64 {
	if question < 1 || question > len(p) {
		return 0
	}
	return p[question-1]
}

type DisplaySettings struct {
	ShowPrizeLadder   bool `json:"showPrizeLadder"`
	ShowTeamList      bool `json:"showTeamList"`
	AnimationDuration int  `json:"animationDuration"`
}

type Config struct {
	DisplaySettings DisplaySettings `json:"displaySettings"`
	TimerDuration   int             `json:"timerDuration"`
}

const (
	DefaultAnimationDuration = 500
	DefaultTimerDuration     = 30
)

func DefaultConfig() Config {
	return Config{
		DisplaySettings: DisplaySettings{
			ShowPrizeLadder:   true,
			ShowTeamList:      true,
			AnimationDuration: DefaultAnimationDuration,
		},
		TimerDuration: DefaultTimerDuration,
	}
}
