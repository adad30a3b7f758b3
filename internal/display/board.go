package display

import (
	"strconv"

	"millionaire-display/internal/format"
	"millionaire-display/internal/game"
)

// Milestones are the safe-haven question numbers.
var Milestones = map[int]bool{5: true, 10: true, 15: true, 20: true}

// OptionStates derives how each answer option is drawn.
func OptionStates(q *game.Question, selected, correct game.OptionKey, revealed bool) []OptionView {
	views := make([]OptionView, 0, len(game.OptionKeys))
	for _, key := range game.OptionKeys {
		text, present := q.Option(key)
		views = append(views, OptionView{
			Key:   key,
			Text:  text,
			State: optionState(key, present, selected, correct, revealed),
		})
	}
	return views
}

func optionState(key game.OptionKey, present bool, selected, correct game.OptionKey, revealed bool) OptionState {
	switch {
	case !present:
		return OptionRemoved
	case revealed && key == correct:
		return OptionCorrect
	case revealed && key == selected:
		return OptionWrong
	case revealed:
		return OptionDimmed
	case key == selected:
		return OptionSelected
	default:
		return OptionDefault
	}
}

// questionLabel renders "Question n of N", or a dash when n is outside the
// prize ladder.
func questionLabel(number, total int) string {
	if number < 1 || number > total {
		return questionSentinel
	}
	return "Question " + strconv.Itoa(number) + " of " + strconv.Itoa(total)
}

// Ladder lists the prize rungs top-down.
func Ladder(f *format.Formatter, prizes game.PrizeStructure, current int) []LadderRung {
	rungs := make([]LadderRung, 0, len(prizes))
	for n := len(prizes); n >= 1; n-- {
		prize := prizes.For(n)
		rungs = append(rungs, LadderRung{
			Number:     n,
			Prize:      f.Prize(prize),
			PrizeShort: format.PrizeShort(prize),
			Milestone:  Milestones[n],
			Current:    n == current,
			Passed:     n < current,
		})
	}
	return rungs
}
