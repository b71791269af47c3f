package main

import "testing"

func TestNewSessionStartsUnregistered(t *testing.T) {
	s := newSession(newFakeConn("c1"))

	if s.nick != unsetNick {
		t.Errorf("nick = %q, want %q", s.nick, unsetNick)
	}
	if s.state != stateNone {
		t.Errorf("state = %v, want %v", s.state, stateNone)
	}
	if s.registered() {
		t.Error("a fresh session should not be registered")
	}
}

func TestSessionRegisteredIncludesAway(t *testing.T) {
	s := newSession(newFakeConn("c1"))
	s.state = stateAway
	if !s.registered() {
		t.Error("stateAway should count as registered")
	}
}

func TestSessionIdentity(t *testing.T) {
	s := newSession(newFakeConn("c1"))
	s.nick = "alice"
	s.user = "auser"

	got := s.identity()
	want := "alice!auser@jusot.com"
	if got != want {
		t.Errorf("identity() = %q, want %q", got, want)
	}
}

func TestSessionStateString(t *testing.T) {
	cases := map[sessionState]string{
		stateNone:       "NONE",
		stateNick:       "NICK",
		stateUser:       "USER",
		stateRegistered: "REGISTERED",
		stateAway:       "AWAY",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
