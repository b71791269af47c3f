package main

import "net"

// sessionState is a Session's position in the NICK/USER registration
// handshake: unset, nick claimed, username given, fully registered, or away.
type sessionState int

const (
	stateNone sessionState = iota
	stateNick
	stateUser
	stateRegistered
	stateAway
)

func (s sessionState) String() string {
	switch s {
	case stateNone:
		return "NONE"
	case stateNick:
		return "NICK"
	case stateUser:
		return "USER"
	case stateRegistered:
		return "REGISTERED"
	case stateAway:
		return "AWAY"
	default:
		return "UNKNOWN"
	}
}

// unsetNick is the sentinel nickname a Session carries before NICK
// completes.
const unsetNick = "*"

// Session holds per-connection state. One exists for every live connection,
// created on accept and destroyed on disconnect or QUIT.
//
// A flat struct with a state tag, rather than a distinct type per lifecycle
// stage, keeps the registration handshake's conditionally-valid fields
// (nick only after NICK, username only after USER) in one place without the
// ceremony of a tagged union.
type Session struct {
	conn Connection

	state sessionState

	nick     string
	user     string
	realName string

	// awayMessage is only meaningful while state == stateAway.
	awayMessage string

	ip net.IP
}

func newSession(conn Connection) *Session {
	return &Session{
		conn: conn,
		nick: unsetNick,
	}
}

// registered reports whether the session has completed the NICK/USER
// handshake (REGISTERED or AWAY).
func (s *Session) registered() bool {
	return s.state == stateRegistered || s.state == stateAway
}

// identity formats the nick!user@host prefix used on messages this session
// originates.
func (s *Session) identity() string {
	return ircPrefix(s.nick, s.user)
}
