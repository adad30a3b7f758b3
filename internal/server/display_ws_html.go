package server

import (
	"bytes"
	"context"

	"millionaire-display/internal/display"
	"millionaire-display/internal/screen"
	"millionaire-display/internal/web"
)

type wsViewMessage struct {
	Type    string            `json:"type"`
	Version int               `json:"version"`
	View    display.ViewModel `json:"view"`
}

type wsHTMLMessage struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Mode   string `json:"mode"`
	HTML   string `json:"html"`
}

func htmlMessage(target, mode, html string) wsHTMLMessage {
	return wsHTMLMessage{Type: "html", Target: target, Mode: mode, HTML: html}
}

func (s *Server) renderFrameMessages(f screen.Frame) []any {
	return []any{
		wsViewMessage{Type: "view", Version: f.Version, View: f.View},
		htmlMessage("#"+s.page.StageID, "inner", s.renderStageHTML(f.View)),
	}
}

func (s *Server) renderStageHTML(vm display.ViewModel) string {
	var buf bytes.Buffer
	if err := web.Stage(vm).Render(context.Background(), &buf); err != nil {
		return ""
	}
	return buf.String()
}
