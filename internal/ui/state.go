// Package ui holds the storefront's per-visitor UI state and the pure
// transitions that move it between views. Rendering is a projection of
// State; handlers never read state back out of markup.
package ui

import (
	"errors"
	"maps"
	"strings"
)

// MaxWishlist caps the wishlist so the state still fits in one cookie.
const MaxWishlist = 50

var ErrWishlistFull = errors.New("wishlist is full")

type View string

const (
	ViewHome          View = "home"
	ViewSearchResults View = "search"
)

type AdminPanel string

const (
	AdminClosed    AdminPanel = "closed"
	AdminLoginForm AdminPanel = "login"
	AdminDashboard AdminPanel = "dashboard"
)

// Action tells the caller what side effect a transition asks for.
type Action int

const (
	ActionNone Action = iota
	ActionSearch
	ActionOpenAdmin
)

type State struct {
	View     View            `json:"view"`
	Query    string          `json:"query,omitempty"`
	Admin    AdminPanel      `json:"admin"`
	Wishlist map[string]bool `json:"wishlist,omitempty"`
}

// NewState is the state of a freshly loaded page.
func NewState() State {
	return State{View: ViewHome, Admin: AdminClosed}
}

// Submit applies a search submission. The admin code opens the admin
// panel instead of searching; blank input changes nothing.
func (s State) Submit(raw, adminCode string) (State, Action) {
	query := strings.TrimSpace(raw)
	if adminCode != "" && query == adminCode {
		return s.OpenAdmin(), ActionOpenAdmin
	}
	if query == "" {
		return s, ActionNone
	}
	s.View = ViewSearchResults
	s.Query = query
	return s, ActionSearch
}

func (s State) NavigateHome() State {
	s.View = ViewHome
	return s
}

func (s State) OpenAdmin() State {
	s.Admin = AdminLoginForm
	return s
}

// LoginSucceeded moves an open login form to the dashboard. A closed
// panel stays closed.
func (s State) LoginSucceeded() State {
	if s.Admin == AdminClosed {
		return s
	}
	s.Admin = AdminDashboard
	return s
}

func (s State) CloseAdmin() State {
	s.Admin = AdminClosed
	return s
}

// IsAdmin reports whether the visitor reached the dashboard.
func (s State) IsAdmin() bool {
	return s.Admin == AdminDashboard
}

// ToggleWishlist flips the wishlist mark of id and reports the new value.
// Marking a product on a full wishlist returns ErrWishlistFull and leaves
// s unchanged; unmarking always succeeds.
func (s State) ToggleWishlist(id string) (State, bool, error) {
	active := !s.Wishlist[id]
	if active && len(s.Wishlist) >= MaxWishlist {
		return s, false, ErrWishlistFull
	}

	wishlist := maps.Clone(s.Wishlist)
	if wishlist == nil {
		wishlist = make(map[string]bool)
	}
	if active {
		wishlist[id] = true
	} else {
		delete(wishlist, id)
	}
	s.Wishlist = wishlist
	return s, active, nil
}

func (s State) Wished(id string) bool {
	return s.Wishlist[id]
}

// Signals is the client-side projection of State.
type Signals struct {
	View      View   `json:"view"`
	Search    string `json:"search"`
	AdminOpen bool   `json:"adminOpen"`
}

func (s State) Signals() Signals {
	return Signals{
		View:      s.View,
		Search:    s.Query,
		AdminOpen: s.Admin != AdminClosed,
	}
}
