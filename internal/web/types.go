package web

// PageOptions configures the full-window display document.
type PageOptions struct {
	Title      string
	SocketPath string
	// StageID is the element the push channel replaces.
	StageID string
}

func DefaultPageOptions() PageOptions {
	return PageOptions{
		Title:      "Who Wants to Be a Millionaire",
		SocketPath: "/ws/display",
		StageID:    "stage",
	}
}
