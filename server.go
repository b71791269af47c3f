package main

import (
	"log"
	"sync/atomic"

	"github.com/jusot/ircd/ircmsg"
)

// eventKind tags what kind of thing happened to a connection.
type eventKind int

const (
	eventConnect eventKind = iota
	eventLine
	eventDisconnect
)

// event is how the read goroutines and the accept loop talk to the
// server's single owning goroutine. Carrying one struct per occurrence,
// rather than locking shared maps from many goroutines, keeps every state
// mutation on one goroutine without a mutex.
type event struct {
	kind eventKind
	conn Connection
	line string
}

// Server holds the server's global indices — sessions, nicknames, channels,
// away messages, opers — plus the configuration and bookkeeping needed to
// run the accept loop. Only the run goroutine reads or writes these maps,
// so no mutex is needed.
type Server struct {
	cfg Config

	events chan event

	nextConnID uint64

	// conn_to_session
	sessions map[Connection]*Session
	// nick_to_conn, keyed by canonicalized nickname
	nicks map[string]Connection
	// channels, keyed by canonicalized name
	channels map[string]*Channel
	// away_messages, keyed by canonicalized nickname
	away map[string]string

	// opers tracks which canonicalized nicknames have authenticated via
	// OPER in this session's lifetime.
	opers map[string]struct{}

	// workerSem bounds how many connections' read goroutines may be
	// concurrently submitting a line event at once, a fixed-size
	// worker pool gating hand-off into the event channel. State mutation
	// itself is already serialized by the single owning goroutine draining
	// events; this only bounds concurrent hand-off.
	workerSem chan struct{}
}

const workerPoolSize = 10

func newServer(cfg Config) *Server {
	return &Server{
		cfg:       cfg,
		events:    make(chan event, 256),
		sessions:  make(map[Connection]*Session),
		nicks:     make(map[string]Connection),
		channels:  make(map[string]*Channel),
		away:      make(map[string]string),
		opers:     make(map[string]struct{}),
		workerSem: make(chan struct{}, workerPoolSize),
	}
}

func (s *Server) nextID() uint64 {
	return atomic.AddUint64(&s.nextConnID, 1)
}

// run is the server's single owning goroutine. It is the only goroutine
// that ever reads or mutates sessions/nicks/channels/away.
func (s *Server) run() {
	for ev := range s.events {
		switch ev.kind {
		case eventConnect:
			s.handleConnect(ev.conn)
		case eventLine:
			s.handleLine(ev.conn, ev.line)
		case eventDisconnect:
			s.handleDisconnect(ev.conn)
		}
	}
}

func (s *Server) handleConnect(conn Connection) {
	s.sessions[conn] = newSession(conn)
}

func (s *Server) handleLine(conn Connection, line string) {
	session, ok := s.sessions[conn]
	if !ok {
		// Event arrived for a connection we already cleaned up.
		return
	}

	msg := ircmsg.ParseMessage(line)
	s.dispatch(session, msg)
}

// dispatch routes one parsed message to its handler. A handful of commands
// (NICK, USER, QUIT, PING, PONG) are valid before registration completes; any
// other command sent pre-registration gets ERR_NOTREGISTERED, and any
// unrecognized command word once registered gets ERR_UNKNOWNCOMMAND.
func (s *Server) dispatch(session *Session, msg ircmsg.Message) {
	if msg.Command == "" {
		return
	}

	// Commands valid before registration completes.
	switch msg.Command {
	case "NICK":
		s.nickCommand(session, msg)
		return
	case "USER":
		s.userCommand(session, msg)
		return
	case "QUIT":
		s.quitCommand(session, msg)
		return
	case "PING":
		s.pingCommand(session, msg)
		return
	case "PONG":
		return
	}

	if !session.registered() {
		session.conn.Send(ircmsg.NotRegistered(session.nick))
		return
	}

	switch msg.Command {
	case "PRIVMSG", "NOTICE":
		s.privmsgCommand(session, msg)
	case "JOIN":
		s.joinCommand(session, msg)
	case "PART":
		s.partCommand(session, msg)
	case "TOPIC":
		s.topicCommand(session, msg)
	case "NAMES":
		s.namesCommand(session, msg)
	case "LIST":
		s.listCommand(session, msg)
	case "MODE":
		s.modeCommand(session, msg)
	case "WHOIS":
		s.whoisCommand(session, msg)
	case "WHO":
		// Declared but unimplemented; a no-op.
	case "LUSERS":
		s.lusersCommand(session, msg)
	case "MOTD":
		s.motdCommand(session, msg)
	case "OPER":
		s.operCommand(session, msg)
	case "AWAY":
		s.awayCommand(session, msg)
	default:
		session.conn.Send(ircmsg.UnknownCommand(session.nick, msg.Command))
	}
}

func (s *Server) handleDisconnect(conn Connection) {
	session, ok := s.sessions[conn]
	if !ok {
		return
	}

	s.cleanupSession(session)
	delete(s.sessions, conn)
}

// cleanupSession releases every piece of global state a session held: its
// nickname binding, channel memberships, away message, and oper status.
// It does not broadcast a QUIT to channel co-members; they only notice the
// departure the next time they address the vanished nickname.
func (s *Server) cleanupSession(session *Session) {
	if session.nick != unsetNick {
		canon := canonicalizeNick(session.nick)
		if s.nicks[canon] == session.conn {
			delete(s.nicks, canon)
		}

		for name, ch := range s.channels {
			if !ch.hasUser(session.nick) {
				continue
			}
			if ch.removeUser(session.nick) {
				delete(s.channels, name)
			}
		}

		delete(s.away, canon)
		delete(s.opers, canon)
	}
}

func (s *Server) logf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
