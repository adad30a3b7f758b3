package rtdb

import (
	"io"
	"iter"

	sse "github.com/tmaxmax/go-sse"
)

// maxEventSize bounds a single event. A put carries a whole node.
const maxEventSize = 16 << 20

type event struct {
	name string
	data string
}

// readEvents yields the events of a text/event-stream body in order. The
// sequence ends when the server closes the stream; a read failure is
// yielded as the final error.
func readEvents(r io.Reader) iter.Seq2[event, error] {
	return func(yield func(event, error) bool) {
		for ev, err := range sse.Read(r, &sse.ReadConfig{MaxEventSize: maxEventSize}) {
			if !yield(event{name: ev.Type, data: ev.Data}, err) {
				return
			}
		}
	}
}
