package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusConnecting Status = "connecting"
	StatusListening  Status = "listening"
	StatusError      Status = "error"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAuthRevoked      = errors.New("auth revoked")
	ErrStreamClosed     = errors.New("stream closed by server")
	ErrStreamIdle       = errors.New("stream idle")
)

const (
	defaultMinBackoff  = time.Second
	defaultMaxBackoff  = 30 * time.Second
	defaultIdleTimeout = 90 * time.Second
)

// TokenSource hands out ID tokens for authenticated reads.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Snapshot is the last known state of a listened path.
type Snapshot struct {
	Path   string
	Status Status
	Value  any
	Err    error
}

// Client builds streaming requests against one database instance.
type Client struct {
	http      *http.Client
	baseURL   string
	namespace string
	tokens    TokenSource
	logger    *zap.Logger
}

// NewClient targets databaseURL in production. For the emulator pass
// "http://host:port" and the project id as namespace.
func NewClient(databaseURL, namespace string, tokens TokenSource, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(databaseURL, "/"),
		namespace: namespace,
		tokens:    tokens,
		logger:    logger,
	}
}

func (c *Client) streamURL(path, token string) string {
	u := c.baseURL + "/" + strings.Trim(path, "/") + ".json"
	q := url.Values{}
	if c.namespace != "" {
		q.Set("ns", c.namespace)
	}
	if token != "" {
		q.Set("auth", token)
	}
	if len(q) == 0 {
		return u
	}
	return u + "?" + q.Encode()
}

// Listen returns an idle listener for path. Call Run to start streaming.
func (c *Client) Listen(path string) *Listener {
	return &Listener{
		client:      c,
		path:        path,
		minBackoff:  defaultMinBackoff,
		maxBackoff:  defaultMaxBackoff,
		idleTimeout: defaultIdleTimeout,
		last:        Snapshot{Path: path, Status: StatusIdle},
		subs:        make(map[int]func(Snapshot)),
		logger:      c.logger.With(zap.String("path", path)),
	}
}

// Listener keeps one path in sync and fans snapshots out to subscribers.
// Callbacks run one at a time in arrival order and must not call back into
// the listener.
type Listener struct {
	client      *Client
	path        string
	minBackoff  time.Duration
	maxBackoff  time.Duration
	idleTimeout time.Duration
	logger      *zap.Logger

	mu     sync.Mutex
	last   Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

func (l *Listener) Path() string { return l.path }

// Last returns the most recent snapshot.
func (l *Listener) Last() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Subscribe delivers the current snapshot immediately and every later one.
func (l *Listener) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	fn(l.last)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

func (l *Listener) publish(status Status, value any, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last = Snapshot{Path: l.path, Status: status, Value: value, Err: err}
	for _, fn := range l.subs {
		fn(l.last)
	}
}

// Run streams until ctx is cancelled, reconnecting with exponential backoff.
// The last good value stays visible while reconnecting.
func (l *Listener) Run(ctx context.Context) error {
	backoff := l.minBackoff
	for {
		l.publish(StatusConnecting, l.Last().Value, nil)
		delivered, err := l.stream(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if delivered {
			backoff = l.minBackoff
		}
		if errors.Is(err, ErrAuthRevoked) || errors.Is(err, ErrPermissionDenied) {
			l.client.tokens.Invalidate()
		}
		l.logger.Warn("stream interrupted", zap.Error(err), zap.Duration("retry_in", backoff))
		l.publish(StatusError, l.Last().Value, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		backoff *= 2
		if backoff > l.maxBackoff {
			backoff = l.maxBackoff
		}
	}
}

type putEvent struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

// stream runs one connection. delivered reports whether any data arrived.
func (l *Listener) stream(ctx context.Context) (delivered bool, err error) {
	token, err := l.client.tokens.Token(ctx)
	if err != nil {
		return false, fmt.Errorf("token: %w", err)
	}

	connCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	idle := time.AfterFunc(l.idleTimeout, func() { cancel(ErrStreamIdle) })
	defer idle.Stop()

	req, err := http.NewRequestWithContext(connCtx, http.MethodGet, l.client.streamURL(l.path, token), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := l.client.http.Do(req)
	if err != nil {
		return false, withCause(connCtx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, statusError(resp)
	}

	var root any
	for ev, err := range readEvents(resp.Body) {
		if err != nil {
			return delivered, withCause(connCtx, err)
		}
		idle.Reset(l.idleTimeout)

		switch ev.name {
		case "put", "patch":
			var msg putEvent
			if err := json.Unmarshal([]byte(ev.data), &msg); err != nil {
				return delivered, fmt.Errorf("decode %s event: %w", ev.name, err)
			}
			if ev.name == "put" {
				var data any
				if err := json.Unmarshal(msg.Data, &data); err != nil {
					return delivered, fmt.Errorf("decode put data: %w", err)
				}
				root = applyPut(root, msg.Path, data)
			} else {
				var data map[string]any
				if err := json.Unmarshal(msg.Data, &data); err != nil {
					return delivered, fmt.Errorf("decode patch data: %w", err)
				}
				root = applyPatch(root, msg.Path, data)
			}
			delivered = true
			l.publish(StatusListening, root, nil)
		case "keep-alive":
		case "cancel":
			return delivered, fmt.Errorf("%w: %s", ErrPermissionDenied, strings.Trim(ev.data, `"`))
		case "auth_revoked":
			return delivered, ErrAuthRevoked
		default:
			l.logger.Debug("ignoring event", zap.String("event", ev.name))
		}
	}
	return delivered, withCause(connCtx, ErrStreamClosed)
}

func withCause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return err
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, msg)
	default:
		return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}
}
