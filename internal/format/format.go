// Package format renders prizes and contacts the way the audience sees them.
package format

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currency = "Rs. "

// DefaultLocale groups digits the Indian way (12,34,567.00).
const DefaultLocale = "en-IN"

// Formatter renders prizes for one locale.
type Formatter struct {
	printer *message.Printer
}

// New returns a Formatter for a BCP-47 locale. Unknown tags fall back to
// DefaultLocale.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

var (
	defaultOnce      sync.Once
	defaultFormatter *Formatter
)

// Default is the shared DefaultLocale formatter.
func Default() *Formatter {
	defaultOnce.Do(func() {
		defaultFormatter = New(DefaultLocale)
	})
	return defaultFormatter
}

// Prize renders "Rs. <grouped>.<2 decimals>".
func (f *Formatter) Prize(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return currency + f.printer.Sprintf("%.2f", amount)
}

// Prize renders with the default formatter.
func Prize(amount float64) string {
	return Default().Prize(amount)
}

var shortUnits = []struct {
	scale  float64
	suffix string
}{
	{1_000_000, "M"},
	{1_000, "K"},
	{1, ""},
}

// PrizeShort renders compact ladder labels: Rs. 1M, Rs. 2.5M, Rs. 500K,
// Rs. 500. Values round half up to one decimal; a value that rounds to
// 1000 of a unit moves up to the next one.
func PrizeShort(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	unit := len(shortUnits) - 1
	for i, u := range shortUnits {
		if amount >= u.scale {
			unit = i
			break
		}
	}
	value := roundTenth(amount / shortUnits[unit].scale)
	if value >= 1000 && unit > 0 {
		unit--
		value = roundTenth(amount / shortUnits[unit].scale)
	}
	return currency + trimZero(value) + shortUnits[unit].suffix
}

func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func trimZero(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}

const bullet = "•"

// MaskContact keeps separators and the final three digits of a phone
// number and replaces every other digit with a bullet. Input without digits
// renders as three bullets.
func MaskContact(contact string) string {
	digits := 0
	for _, r := range contact {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits == 0 {
		return strings.Repeat(bullet, 3)
	}
	var b strings.Builder
	seen := 0
	for _, r := range contact {
		if r >= '0' && r <= '9' {
			seen++
			if seen <= digits-3 {
				b.WriteString(bullet)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
