package web

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

// classes joins base with every name whose flag is set.
func classes(base string, flags ...any) string {
	parts := []string{base}
	for i := 0; i+1 < len(flags); i += 2 {
		name, _ := flags[i].(string)
		on, _ := flags[i+1].(bool)
		if on && name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// markup accumulates output and keeps the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (m *markup) raw(parts ...string) {
	for _, part := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, part)
	}
}

func (m *markup) text(value string) {
	m.raw(templ.EscapeString(value))
}

func (m *markup) attr(name, value string) {
	m.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (m *markup) render(c templ.Component) {
	if m.err == nil && c != nil {
		m.err = c.Render(m.ctx, m.w)
	}
}

func component(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		fn(m)
		return m.err
	})
}
