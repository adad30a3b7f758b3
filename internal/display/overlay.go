package display

import (
	"millionaire-display/internal/countdown"
	"millionaire-display/internal/game"
)

// SelectOverlay picks the single overlay drawn over the game screen. The
// cases are in priority order; the first match wins.
func SelectOverlay(state game.State, current *game.Team) Overlay {
	switch {
	case state.Status == game.StatusPaused && state.ActiveLifeline == game.LifelinePhoneAFriend:
		return OverlayPhoneAFriend
	case state.Status == game.StatusPaused:
		return OverlayPause
	case state.Status == game.StatusCompleted:
		return OverlayTeamResult
	case state.AnswerRevealed && current != nil && current.Status.Terminal():
		return OverlayTeamResult
	case state.Status == game.StatusActive && (state.CurrentQuestionNumber == nil || *state.CurrentQuestionNumber == 0):
		return OverlayAnnouncement
	default:
		return OverlayNone
	}
}

// ResultKey identifies a team-result overlay. A new key restarts the
// overlay's enter animation and its reveal delay.
func ResultKey(teamID string, status game.TeamStatus) string {
	return "team-result:" + teamID + ":" + string(status)
}

// Capture records the board at the moment a team's run ends: the answer is
// revealed and the current team is eliminated or completed. It must be taken
// in the same pass that sees that input, before the host's follow-up write
// clears the fields.
func Capture(state game.State, current *game.Team) *FrozenGameplay {
	if !state.AnswerRevealed || current == nil || !current.Status.Terminal() {
		return nil
	}
	return &FrozenGameplay{
		Key:             ResultKey(current.ID, current.Status),
		CurrentQuestion: state.CurrentQuestion,
		SelectedOption:  state.SelectedOption,
		CorrectOption:   state.CorrectOption,
		AnswerRevealed:  state.AnswerRevealed,
		ActiveLifeline:  state.ActiveLifeline,
	}
}

// ResultTeam is the team the result overlay is about: the current team, or
// the last team in the play queue once the host has cleared currentTeamId
// at the end of the game. Without a queue, teams are taken in id order.
func ResultTeam(state game.State, teams []game.Team, overlay Overlay) *game.Team {
	if team := findTeam(teams, state.CurrentTeamID); team != nil {
		return team
	}
	if overlay != OverlayTeamResult {
		return nil
	}
	if n := len(state.PlayQueue); n > 0 {
		return findTeam(teams, state.PlayQueue[n-1])
	}
	if n := len(teams); n > 0 {
		team := teams[n-1]
		return &team
	}
	return nil
}

// PhoneAFriendCountdown derives the lifeline timer from the remote start
// timestamp.
func PhoneAFriendCountdown(state game.State, cfg game.Config, now int64) countdown.Countdown {
	duration := cfg.TimerDuration
	if duration <= 0 {
		duration = game.DefaultTimerDuration
	}
	return countdown.Derive(state.LifelineTimerStartedAt, duration, now)
}

func findTeam(teams []game.Team, id string) *game.Team {
	if id == "" {
		return nil
	}
	for i := range teams {
		if teams[i].ID == id {
			team := teams[i]
			return &team
		}
	}
	return nil
}
