package display

import (
	"millionaire-display/internal/countdown"
	"millionaire-display/internal/game"
)

// ViewModel is everything the rendering surface needs for one frame.
// Exactly one of Loading, Idle, Game and Results is set, matching Screen.
type ViewModel struct {
	Screen     Screen               `json:"screen"`
	Overlay    Overlay              `json:"overlay,omitempty"`
	OverlayKey string               `json:"overlayKey,omitempty"`
	Settings   game.DisplaySettings `json:"settings"`
	Loading    *LoadingView         `json:"loading,omitempty"`
	Idle       *IdleView            `json:"idle,omitempty"`
	Game       *GameView            `json:"game,omitempty"`
	Results    *ResultsView         `json:"results,omitempty"`

	// Capture is the board recorded during this pass, for the router to
	// retain across later snapshots.
	Capture *FrozenGameplay `json:"-"`
}

type LoadingView struct {
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
	Stream  string `json:"stream,omitempty"`
}

type TeamCard struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Participants  []string        `json:"participants"`
	Status        game.TeamStatus `json:"status"`
	PrizeValue    float64         `json:"prizeValue"`
	Prize         string          `json:"prize"`
	PrizeShort    string          `json:"prizeShort"`
	PhoneAFriend  bool            `json:"phoneAFriend"`
	FiftyFifty    bool            `json:"fiftyFifty"`
	Current       bool            `json:"current"`
	QueuePosition int             `json:"queuePosition"`
}

type StepView struct {
	Label  string `json:"label"`
	Done   bool   `json:"done"`
	Active bool   `json:"active"`
}

type IdleView struct {
	Phase      IdlePhase  `json:"phase"`
	Heading    string     `json:"heading"`
	Subheading string     `json:"subheading"`
	Teams      []TeamCard `json:"teams"`
	NoTeams    bool       `json:"noTeams"`
	Steps      []StepView `json:"steps,omitempty"`
}

type OptionView struct {
	Key   game.OptionKey `json:"key"`
	Text  string         `json:"text"`
	State OptionState    `json:"state"`
}

type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

type LadderRung struct {
	Number     int    `json:"number"`
	Prize      string `json:"prize"`
	PrizeShort string `json:"prizeShort"`
	Milestone  bool   `json:"milestone"`
	Current    bool   `json:"current"`
	Passed     bool   `json:"passed"`
}

type AnnouncementView struct {
	Heading       string    `json:"heading"`
	Team          *TeamCard `json:"team,omitempty"`
	QueuePosition int       `json:"queuePosition"`
	QueueLength   int       `json:"queueLength"`
}

type PhoneAFriendView struct {
	Team      *TeamCard           `json:"team,omitempty"`
	Contact   string              `json:"contact,omitempty"`
	Countdown countdown.Countdown `json:"countdown"`
}

type PauseView struct {
	Heading string `json:"heading"`
	Message string `json:"message"`
}

type TeamResultView struct {
	Team        *TeamCard `json:"team,omitempty"`
	Outcome     string    `json:"outcome"`
	Prize       string    `json:"prize"`
	PrizeShort  string    `json:"prizeShort"`
	CardVisible bool      `json:"cardVisible"`
}

type GameView struct {
	Team             *TeamCard     `json:"team,omitempty"`
	QueuePosition    int           `json:"queuePosition"`
	QueueLength      int           `json:"queueLength"`
	QuestionNumber   int           `json:"questionNumber"`
	QuestionLabel    string        `json:"questionLabel"`
	QuestionPrize    string        `json:"questionPrize"`
	Question         *QuestionView `json:"question,omitempty"`
	QuestionVisible  bool          `json:"questionVisible"`
	OptionsVisible   bool          `json:"optionsVisible"`
	BetweenQuestions bool          `json:"betweenQuestions"`
	Frozen           bool          `json:"frozen"`
	ActiveLifeline   game.Lifeline `json:"activeLifeline,omitempty"`
	Ladder           []LadderRung  `json:"ladder,omitempty"`
	TeamList         []TeamCard    `json:"teamList,omitempty"`

	Announcement *AnnouncementView `json:"announcement,omitempty"`
	PhoneAFriend *PhoneAFriendView `json:"phoneAFriend,omitempty"`
	Pause        *PauseView        `json:"pause,omitempty"`
	TeamResult   *TeamResultView   `json:"teamResult,omitempty"`
}

type RankedTeam struct {
	Rank int      `json:"rank"`
	Team TeamCard `json:"team"`
}

type ResultsView struct {
	Heading string       `json:"heading"`
	Ranking []RankedTeam `json:"ranking"`
}
