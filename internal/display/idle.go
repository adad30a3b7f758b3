package display

import "millionaire-display/internal/game"

// StepperLabels are the steps played while the host initializes the game.
var StepperLabels = []string{
	"Syncing teams",
	"Loading prize ladder",
	"Arming lifelines",
	"Preparing questions",
}

// InitialPhase is the idle sub-phase for a display that did not witness the
// host's initialization.
func InitialPhase(status game.Status) IdlePhase {
	if status == game.StatusInitialized {
		return PhaseReady
	}
	return PhaseLobby
}

func idleView(local Local, state game.State, board roster) *IdleView {
	phase := local.Phase
	if phase == "" {
		phase = InitialPhase(state.Status)
	}
	view := &IdleView{
		Phase:   phase,
		Teams:   board.cards(),
		NoTeams: len(board.teams) == 0,
	}
	switch phase {
	case PhaseInitializing:
		view.Heading = "Setting Up the Game"
		view.Subheading = "The host is preparing the show"
		view.Steps = steps(local.Stepper.Step, false)
	case PhaseReady:
		view.Heading = "We're Ready!"
		view.Subheading = "The first team will be called shortly"
		view.Steps = steps(len(StepperLabels), true)
	default:
		view.Heading = "Get Ready to Play"
		if view.NoTeams {
			view.Subheading = "Waiting for teams to register"
		} else {
			view.Subheading = "Teams taking part tonight"
		}
	}
	return view
}

func steps(current int, complete bool) []StepView {
	views := make([]StepView, 0, len(StepperLabels))
	for i, label := range StepperLabels {
		views = append(views, StepView{
			Label:  label,
			Done:   complete || i < current,
			Active: !complete && i == current,
		})
	}
	return views
}
