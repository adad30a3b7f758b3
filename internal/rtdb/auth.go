package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	identityToolkitHost = "https://identitytoolkit.googleapis.com"
	secureTokenHost     = "https://securetoken.googleapis.com"
	emulatorAPIKey      = "fake-api-key"
	refreshSkew         = time.Minute
)

var ErrNotSignedIn = errors.New("not signed in")

// AnonymousAuth signs the display in as an anonymous user and keeps its ID
// token fresh. It is safe for concurrent use.
type AnonymousAuth struct {
	http       *http.Client
	signUpURL  string
	refreshURL string
	now        func() time.Time

	mu           sync.Mutex
	uid          string
	idToken      string
	refreshToken string
	expiresAt    time.Time
}

// NewAnonymousAuth targets the Identity Toolkit. When emulatorHost is set
// requests go to the auth emulator instead.
func NewAnonymousAuth(apiKey, emulatorHost string, httpClient *http.Client) *AnonymousAuth {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	identity, secure := identityToolkitHost, secureTokenHost
	if emulatorHost != "" {
		identity = "http://" + emulatorHost + "/identitytoolkit.googleapis.com"
		secure = "http://" + emulatorHost + "/securetoken.googleapis.com"
		if apiKey == "" {
			apiKey = emulatorAPIKey
		}
	}
	key := url.QueryEscape(apiKey)
	return &AnonymousAuth{
		http:       httpClient,
		signUpURL:  identity + "/v1/accounts:signUp?key=" + key,
		refreshURL: secure + "/v1/token?key=" + key,
		now:        time.Now,
	}
}

type signUpResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn creates a new anonymous session, replacing any existing one.
func (a *AnonymousAuth) SignIn(ctx context.Context) error {
	body, err := json.Marshal(map[string]any{"returnSecureToken": true})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.signUpURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var out signUpResponse
	if err := a.do(req, &out); err != nil {
		return fmt.Errorf("anonymous sign-in: %w", err)
	}
	if out.IDToken == "" {
		return errors.New("anonymous sign-in: empty id token")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.uid = out.LocalID
	a.store(out.IDToken, out.RefreshToken, out.ExpiresIn)
	return nil
}

// Token returns a valid ID token, refreshing it when it is about to expire.
func (a *AnonymousAuth) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	token, refresh, expires := a.idToken, a.refreshToken, a.expiresAt
	a.mu.Unlock()

	if token != "" && a.now().Add(refreshSkew).Before(expires) {
		return token, nil
	}
	if refresh == "" {
		if token == "" {
			return "", ErrNotSignedIn
		}
		if err := a.SignIn(ctx); err != nil {
			return "", err
		}
	} else if err := a.refresh(ctx, refresh); err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.idToken, nil
}

// Invalidate forces the next Token call to fetch a fresh token.
func (a *AnonymousAuth) Invalidate() {
	a.mu.Lock()
	a.expiresAt = time.Time{}
	a.mu.Unlock()
}

// UID is the anonymous user id, empty before sign-in.
func (a *AnonymousAuth) UID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.uid
}

func (a *AnonymousAuth) refresh(ctx context.Context, refreshToken string) error {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.refreshURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out refreshResponse
	if err := a.do(req, &out); err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if out.UserID != "" {
		a.uid = out.UserID
	}
	a.store(out.IDToken, out.RefreshToken, out.ExpiresIn)
	return nil
}

// store must be called with mu held.
func (a *AnonymousAuth) store(idToken, refreshToken, expiresIn string) {
	seconds, err := strconv.Atoi(expiresIn)
	if err != nil || seconds <= 0 {
		seconds = 3600
	}
	a.idToken = idToken
	if refreshToken != "" {
		a.refreshToken = refreshToken
	}
	a.expiresAt = a.now().Add(time.Duration(seconds) * time.Second)
}

func (a *AnonymousAuth) do(req *http.Request, out any) error {
	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}
