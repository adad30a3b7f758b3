package display

import (
	"sort"

	"millionaire-display/internal/format"
	"millionaire-display/internal/game"
)

// roster holds the teams in id order and in play order.
type roster struct {
	f         *format.Formatter
	teams     []game.Team
	ordered   []game.Team
	queue     []string
	currentID string
}

func newRoster(f *format.Formatter, teams []game.Team, state game.State) roster {
	byID := make([]game.Team, len(teams))
	copy(byID, teams)
	sort.SliceStable(byID, func(i, j int) bool {
		return byID[i].ID < byID[j].ID
	})
	return roster{
		f:         f,
		teams:     byID,
		ordered:   PlayOrder(byID, state.PlayQueue),
		queue:     state.PlayQueue,
		currentID: state.CurrentTeamID,
	}
}

// PlayOrder lists teams in play-queue order. Teams missing from the queue
// follow in id order; without a queue the order is by id.
func PlayOrder(teams []game.Team, queue []string) []game.Team {
	ordered := make([]game.Team, 0, len(teams))
	placed := make(map[string]bool, len(teams))
	for _, id := range queue {
		if placed[id] {
			continue
		}
		if team := findTeam(teams, id); team != nil {
			ordered = append(ordered, *team)
			placed[id] = true
		}
	}
	for _, team := range teams {
		if !placed[team.ID] {
			ordered = append(ordered, team)
		}
	}
	return ordered
}

func (r roster) find(id string) *game.Team {
	return findTeam(r.teams, id)
}

func (r roster) queueLength() int {
	if len(r.queue) > 0 {
		return len(r.queue)
	}
	return len(r.teams)
}

func (r roster) card(team game.Team) TeamCard {
	position := 0
	for i := range r.ordered {
		if r.ordered[i].ID == team.ID {
			position = i + 1
			break
		}
	}
	return TeamCard{
		ID:            team.ID,
		Name:          team.Name,
		Participants:  team.ParticipantNames(),
		Status:        team.Status,
		PrizeValue:    team.CurrentPrize,
		Prize:         r.f.Prize(team.CurrentPrize),
		PrizeShort:    format.PrizeShort(team.CurrentPrize),
		PhoneAFriend:  team.LifelinesAvailable.PhoneAFriend,
		FiftyFifty:    team.LifelinesAvailable.FiftyFifty,
		Current:       team.ID != "" && team.ID == r.currentID,
		QueuePosition: position,
	}
}

func (r roster) cards() []TeamCard {
	cards := make([]TeamCard, 0, len(r.ordered))
	for _, team := range r.ordered {
		cards = append(cards, r.card(team))
	}
	return cards
}

func (r roster) ranking() []RankedTeam {
	ranked := Rank(r.teams)
	out := make([]RankedTeam, 0, len(ranked))
	for _, entry := range ranked {
		out = append(out, RankedTeam{Rank: entry.Rank, Team: r.card(entry.Team)})
	}
	return out
}

type Standing struct {
	Rank int
	Team game.Team
}

// Rank orders teams by prize (highest first), then completed runs ahead of
// eliminations, then by name. Equal prizes share a rank and the next prize
// resumes at its position in the list (1, 1, 3).
func Rank(teams []game.Team) []Standing {
	sorted := make([]game.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.CurrentPrize != b.CurrentPrize {
			return a.CurrentPrize > b.CurrentPrize
		}
		ac, bc := a.Status == game.TeamCompleted, b.Status == game.TeamCompleted
		if ac != bc {
			return ac
		}
		return a.Name < b.Name
	})
	standings := make([]Standing, 0, len(sorted))
	for i, team := range sorted {
		rank := i + 1
		if i > 0 && team.CurrentPrize == sorted[i-1].CurrentPrize {
			rank = standings[i-1].Rank
		}
		standings = append(standings, Standing{Rank: rank, Team: team})
	}
	return standings
}
