package web

import (
	"strconv"

	"millionaire-display/internal/display"

	"github.com/a-h/templ"
)

func Game(view *display.GameView) templ.Component {
	return component(func(m *markup) {
		if view == nil {
			return
		}
		m.raw(`<section class="screen game-screen"><div class="game"><div class="board"><div class="header"><span>`)
		if view.Team != nil {
			m.text(view.Team.Name)
		}
		m.raw(`</span><span>`)
		m.text(view.QuestionLabel)
		m.raw(`</span><span>`)
		m.text(view.QuestionPrize)
		m.raw(`</span></div>`)
		if label := lifelineLabel(view.ActiveLifeline); label != "" {
			m.raw(`<div class="between">Lifeline: `)
			m.text(label)
			m.raw(`</div>`)
		}
		switch {
		case view.Question != nil && view.QuestionVisible:
			m.render(QuestionBoard(view.Question, view.OptionsVisible))
		case view.BetweenQuestions:
			m.raw(`<div class="between">Get ready for the next question…</div>`)
		}
		m.raw(`</div><aside class="side">`)
		if len(view.Ladder) > 0 {
			m.render(PrizeLadder(view.Ladder))
		}
		if len(view.TeamList) > 0 {
			m.render(TeamGrid(view.TeamList))
		}
		m.raw(`</aside></div>`)
		m.render(Overlay(view))
		m.raw(`</section>`)
	})
}

func QuestionBoard(q *display.QuestionView, optionsVisible bool) templ.Component {
	return component(func(m *markup) {
		m.raw(`<div class="question"`)
		m.attr("data-question-id", q.ID)
		m.raw(`>`)
		m.text(q.Text)
		m.raw(`</div>`)
		if !optionsVisible {
			return
		}
		m.raw(`<div class="options">`)
		for _, opt := range q.Options {
			m.raw(`<div`)
			m.attr("class", "option "+string(opt.State))
			m.attr("data-option", string(opt.Key))
			m.raw(`><span class="key">`)
			m.text(string(opt.Key) + ":")
			m.raw(`</span>`)
			m.text(opt.Text)
			m.raw(`</div>`)
		}
		m.raw(`</div>`)
	})
}

func PrizeLadder(rungs []display.LadderRung) templ.Component {
	return component(func(m *markup) {
		m.raw(`<ol class="ladder">`)
		for _, rung := range rungs {
			m.raw(`<li`)
			m.attr("class", classes("rung", "milestone", rung.Milestone, "passed", rung.Passed, "current", rung.Current))
			m.raw(`><span>`)
			m.text(itoa(rung.Number))
			m.raw(`</span><span>`)
			m.text(rung.PrizeShort)
			m.raw(`</span></li>`)
		}
		m.raw(`</ol>`)
	})
}

// Overlay renders whichever overlay the view carries, if any.
func Overlay(view *display.GameView) templ.Component {
	return component(func(m *markup) {
		switch {
		case view.PhoneAFriend != nil:
			m.render(phoneAFriend(view.PhoneAFriend))
		case view.Pause != nil:
			m.raw(`<div class="overlay" data-overlay="pause"><div class="card"><h1>`)
			m.text(view.Pause.Heading)
			m.raw(`</h1><h2>`)
			m.text(view.Pause.Message)
			m.raw(`</h2></div></div>`)
		case view.TeamResult != nil && view.TeamResult.CardVisible:
			m.render(teamResult(view.TeamResult))
		case view.Announcement != nil:
			m.render(announcement(view.Announcement))
		}
	})
}

func phoneAFriend(view *display.PhoneAFriendView) templ.Component {
	return component(func(m *markup) {
		cd := view.Countdown
		m.raw(`<div class="overlay" data-overlay="phoneAFriend"><div`)
		m.attr("class", classes("card", "expiring", cd.IsExpiring, "expired", cd.HasExpired))
		m.attr("data-phase", string(cd.Phase))
		m.raw(`><h2>Phone a Friend</h2>`)
		if view.Team != nil {
			m.raw(`<h1>`)
			m.text(view.Team.Name)
			m.raw(`</h1>`)
		}
		if view.Contact != "" {
			m.raw(`<h2>`)
			m.text(view.Contact)
			m.raw(`</h2>`)
		}
		m.raw(`<div class="big">`)
		m.text(cd.Display)
		m.raw(`</div><div class="progress"><span`)
		m.attr("style", "width: "+strconv.FormatFloat(cd.Progress*100, 'f', 1, 64)+"%")
		m.raw(`></span></div>`)
		if cd.HasExpired {
			m.raw(`<h2>Time's up!</h2>`)
		}
		m.raw(`</div></div>`)
	})
}

func teamResult(view *display.TeamResultView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<div class="overlay" data-overlay="teamResult"><div`)
		m.attr("class", "card "+view.Outcome)
		m.raw(`><h2>`)
		m.text(outcomeHeading(view.Outcome))
		m.raw(`</h2>`)
		if view.Team != nil {
			m.raw(`<h1>`)
			m.text(view.Team.Name)
			m.raw(`</h1>`)
			for _, name := range view.Team.Participants {
				m.raw(`<div class="meta">`)
				m.text(name)
				m.raw(`</div>`)
			}
		}
		m.raw(`<div class="big">`)
		m.text(view.Prize)
		m.raw(`</div></div></div>`)
	})
}

func announcement(view *display.AnnouncementView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<div class="overlay" data-overlay="announcement"><div class="card"><h2>`)
		m.text(view.Heading)
		m.raw(`</h2>`)
		if view.Team != nil {
			m.raw(`<h1>`)
			m.text(view.Team.Name)
			m.raw(`</h1>`)
		}
		if view.QueueLength > 0 && view.QueuePosition > 0 {
			m.raw(`<h2>Team `)
			m.text(itoa(view.QueuePosition) + " of " + itoa(view.QueueLength))
			m.raw(`</h2>`)
		}
		m.raw(`</div></div>`)
	})
}
