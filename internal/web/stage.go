package web

import (
	"strings"

	"millionaire-display/internal/display"
	"millionaire-display/internal/game"

	"github.com/a-h/templ"
)

// Stage renders the contents of the stage element for one view model.
func Stage(vm display.ViewModel) templ.Component {
	return component(func(m *markup) {
		switch vm.Screen {
		case display.ScreenIdle:
			m.render(Idle(vm.Idle))
		case display.ScreenGame:
			m.render(Game(vm.Game))
		case display.ScreenResults:
			m.render(Results(vm.Results))
		default:
			m.render(Loading(vm.Loading))
		}
	})
}

func Loading(view *display.LoadingView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="screen loading"><div class="spinner"></div><h2>`)
		if view != nil {
			m.text(view.Message)
		}
		m.raw(`</h2>`)
		if view != nil && view.Err != "" {
			m.raw(`<p class="error">`)
			m.text(view.Err)
			m.raw(`</p>`)
		}
		m.raw(`</section>`)
	})
}

func Idle(view *display.IdleView) templ.Component {
	return component(func(m *markup) {
		if view == nil {
			return
		}
		m.raw(`<section class="screen idle"`)
		m.attr("data-phase", string(view.Phase))
		m.raw(`><h1>`)
		m.text(view.Heading)
		m.raw(`</h1><h2>`)
		m.text(view.Subheading)
		m.raw(`</h2>`)
		if len(view.Steps) > 0 {
			m.raw(`<ol class="steps">`)
			for _, step := range view.Steps {
				m.raw(`<li`)
				m.attr("class", classes("step", "done", step.Done, "active", step.Active))
				m.raw(`>`)
				m.text(step.Label)
				m.raw(`</li>`)
			}
			m.raw(`</ol>`)
		}
		if !view.NoTeams {
			m.render(TeamGrid(view.Teams))
		}
		m.raw(`</section>`)
	})
}

func TeamGrid(cards []display.TeamCard) templ.Component {
	return component(func(m *markup) {
		m.raw(`<div class="teams">`)
		for _, card := range cards {
			m.render(TeamTile(card))
		}
		m.raw(`</div>`)
	})
}

func TeamTile(card display.TeamCard) templ.Component {
	return component(func(m *markup) {
		m.raw(`<article`)
		m.attr("class", classes("team", "current", card.Current, string(card.Status), card.Status != ""))
		m.attr("data-team-id", card.ID)
		m.raw(`><div class="name">`)
		m.text(card.Name)
		m.raw(`</div>`)
		if len(card.Participants) > 0 {
			m.raw(`<div class="meta">`)
			m.text(strings.Join(card.Participants, ", "))
			m.raw(`</div>`)
		}
		m.raw(`<div class="meta">`)
		m.text(card.PrizeShort)
		if card.QueuePosition > 0 {
			m.text(" · #" + itoa(card.QueuePosition))
		}
		m.raw(`</div><div>`)
		lifeline(m, "📞 Phone a Friend", card.PhoneAFriend)
		lifeline(m, "½ 50:50", card.FiftyFifty)
		m.raw(`</div></article>`)
	})
}

func lifeline(m *markup, label string, available bool) {
	m.raw(`<span`)
	m.attr("class", classes("lifeline", "used", !available))
	m.raw(`>`)
	m.text(label)
	m.raw(`</span>`)
}

func Results(view *display.ResultsView) templ.Component {
	return component(func(m *markup) {
		if view == nil {
			return
		}
		m.raw(`<section class="screen results"><h1>`)
		m.text(view.Heading)
		m.raw(`</h1><ol>`)
		for _, row := range view.Ranking {
			m.raw(`<li`)
			m.attr("class", string(row.Team.Status))
			m.raw(`><span class="rank">`)
			m.text(itoa(row.Rank))
			m.raw(`</span><span>`)
			m.text(row.Team.Name)
			m.raw(`</span><span>`)
			m.text(row.Team.Prize)
			m.raw(`</span></li>`)
		}
		m.raw(`</ol></section>`)
	})
}

func outcomeHeading(outcome string) string {
	switch outcome {
	case "won":
		return "Champions!"
	case "eliminated":
		return "Eliminated"
	default:
		return "Run Complete"
	}
}

func lifelineLabel(l game.Lifeline) string {
	switch l {
	case game.LifelinePhoneAFriend:
		return "Phone a Friend"
	case game.LifelineFiftyFifty:
		return "50:50"
	default:
		return ""
	}
}
