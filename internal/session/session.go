// Package session keeps each visitor's ui.State in a signed cookie.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"storefront/internal/ui"
)

const (
	sessionName = "storefront_session"
	stateKey    = "ui_state"
)

type Store struct {
	store sessions.Store
}

func NewStore(secret string, secure bool) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &Store{store: cs}
}

// Load returns the visitor's state. A missing, expired or tampered
// cookie yields a fresh state.
func (s *Store) Load(r *http.Request) ui.State {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return ui.NewState()
	}
	raw, ok := sess.Values[stateKey].(string)
	if !ok {
		return ui.NewState()
	}
	var state ui.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return ui.NewState()
	}
	return state
}

// Save writes state back to the visitor's cookie. It must run before
// any part of the response body is written.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, state ui.State) error {
	sess, _ := s.store.Get(r, sessionName)
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode ui state: %w", err)
	}
	sess.Values[stateKey] = string(raw)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
