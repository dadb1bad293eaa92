package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const adminCode = "112233"

func TestState_SubmitSearch(t *testing.T) {
	s, action := NewState().Submit("  Watches ", adminCode)

	if action != ActionSearch {
		t.Fatalf("expected ActionSearch, got %v", action)
	}
	want := State{View: ViewSearchResults, Query: "Watches", Admin: AdminClosed}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestState_SubmitBlankLeavesStateUnchanged(t *testing.T) {
	starts := []State{
		NewState(),
		{View: ViewSearchResults, Query: "Fashion", Admin: AdminClosed},
		{View: ViewHome, Admin: AdminDashboard, Wishlist: map[string]bool{"p1": true}},
	}
	for _, start := range starts {
		for _, raw := range []string{"", "   ", "\t\n"} {
			got, action := start.Submit(raw, adminCode)
			if action != ActionNone {
				t.Errorf("Submit(%q) action = %v, want ActionNone", raw, action)
			}
			if diff := cmp.Diff(start, got); diff != "" {
				t.Errorf("Submit(%q) changed state (-want +got):\n%s", raw, diff)
			}
		}
	}
}

func TestState_SubmitAdminCodeOpensPanel(t *testing.T) {
	start := State{View: ViewSearchResults, Query: "Beauty", Admin: AdminClosed}

	got, action := start.Submit(" 112233 ", adminCode)
	if action != ActionOpenAdmin {
		t.Fatalf("expected ActionOpenAdmin, got %v", action)
	}
	if got.Admin != AdminLoginForm {
		t.Errorf("expected login form, got %q", got.Admin)
	}
	if got.View != start.View || got.Query != start.Query {
		t.Errorf("admin code must not touch the view: got %+v", got)
	}
}

func TestState_NavigateHome(t *testing.T) {
	s, _ := NewState().Submit("Watches", adminCode)
	s = s.NavigateHome()
	if s.View != ViewHome {
		t.Errorf("expected home view, got %q", s.View)
	}
}

func TestState_AdminLifecycle(t *testing.T) {
	s := NewState()

	if s.LoginSucceeded().Admin != AdminClosed {
		t.Error("login on a closed panel must not open the dashboard")
	}

	s = s.OpenAdmin()
	if s.Admin != AdminLoginForm {
		t.Fatalf("expected login form, got %q", s.Admin)
	}
	if s.IsAdmin() {
		t.Error("login form is not an admin session")
	}

	s = s.LoginSucceeded()
	if s.Admin != AdminDashboard || !s.IsAdmin() {
		t.Fatalf("expected dashboard, got %q", s.Admin)
	}

	s = s.CloseAdmin()
	if s.Admin != AdminClosed {
		t.Errorf("expected closed panel, got %q", s.Admin)
	}
}

func TestState_ToggleWishlistTwiceRestores(t *testing.T) {
	start := NewState()

	once, active, err := start.ToggleWishlist("prod_001")
	if err != nil {
		t.Fatalf("ToggleWishlist() error = %v", err)
	}
	if !active || !once.Wished("prod_001") {
		t.Fatal("first toggle should mark the product")
	}
	if start.Wished("prod_001") {
		t.Error("toggle must not mutate the receiver's wishlist")
	}

	twice, active, err := once.ToggleWishlist("prod_001")
	if err != nil {
		t.Fatalf("ToggleWishlist() error = %v", err)
	}
	if active || twice.Wished("prod_001") {
		t.Fatal("second toggle should clear the mark")
	}
	if len(twice.Wishlist) != 0 {
		t.Errorf("expected empty wishlist, got %v", twice.Wishlist)
	}
}

func TestState_ToggleWishlistCapped(t *testing.T) {
	s := NewState()
	for i := range MaxWishlist {
		var err error
		s, _, err = s.ToggleWishlist(fmt.Sprintf("prod_%03d", i))
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}

	full, active, err := s.ToggleWishlist("one_more")
	if !errors.Is(err, ErrWishlistFull) {
		t.Fatalf("expected ErrWishlistFull, got %v", err)
	}
	if active || full.Wished("one_more") || len(full.Wishlist) != MaxWishlist {
		t.Error("a rejected toggle must leave the wishlist unchanged")
	}

	// removing from a full wishlist still works
	s, active, err = s.ToggleWishlist("prod_000")
	if err != nil || active || s.Wished("prod_000") {
		t.Errorf("expected removal to succeed, got active=%v err=%v", active, err)
	}
}

func TestState_Signals(t *testing.T) {
	s, _ := NewState().Submit("Fashion", adminCode)
	s = s.OpenAdmin()

	want := Signals{View: ViewSearchResults, Search: "Fashion", AdminOpen: true}
	if diff := cmp.Diff(want, s.Signals()); diff != "" {
		t.Errorf("Signals() mismatch (-want +got):\n%s", diff)
	}
}
