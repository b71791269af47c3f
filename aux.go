package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/jusot/ircd/ircmsg"
)

// quitCommand handles QUIT. Cleanup of channel memberships and the
// nickname binding happens uniformly through cleanupSession when the
// connection's disconnect event later arrives, so this only needs to tell
// the client goodbye and close its connection.
func (s *Server) quitCommand(session *Session, msg ircmsg.Message) {
	message := "Client Quit"
	if len(msg.Params) > 0 {
		message = msg.Params[0]
	}
	session.conn.Send(ircmsg.Error("Closing Link: " + session.nick + " (" + message + ")"))
	session.conn.Close()
}

func (s *Server) pingCommand(session *Session, msg ircmsg.Message) {
	session.conn.Send(ircmsg.Pong())
}

// motdCommand handles MOTD. The file is tokenised by whitespace rather
// than by line, so one RPL_MOTD line is sent per word, not per line of the
// file.
func (s *Server) motdCommand(session *Session, msg ircmsg.Message) {
	s.sendMotd(session)
}

func (s *Server) sendMotd(session *Session) {
	f, err := os.Open(s.cfg.MotdFile)
	if err != nil {
		session.conn.Send(ircmsg.NoMotd(session.nick))
		return
	}
	defer func() { _ = f.Close() }()

	session.conn.Send(ircmsg.MotdStart(session.nick, s.cfg.ServerName))

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		session.conn.Send(ircmsg.Motd(session.nick, scanner.Text()))
	}

	session.conn.Send(ircmsg.EndOfMotd(session.nick))
}

// lusersCommand handles LUSERS.
func (s *Server) lusersCommand(session *Session, msg ircmsg.Message) {
	s.sendLusers(session)
}

func (s *Server) sendLusers(session *Session) {
	var registered, unknown, ops int
	for _, sess := range s.sessions {
		if sess.registered() {
			registered++
			if s.isOper(sess.nick) {
				ops++
			}
		} else {
			unknown++
		}
	}

	session.conn.Send(ircmsg.LUserClient(session.nick, registered))
	session.conn.Send(ircmsg.LUserOp(session.nick, ops))
	session.conn.Send(ircmsg.LUserUnknown(session.nick, unknown))
	session.conn.Send(ircmsg.LUserChannels(session.nick, len(s.channels)))
	session.conn.Send(ircmsg.LUserMe(session.nick, registered))
}

func (s *Server) isOper(nick string) bool {
	_, ok := s.opers[canonicalizeNick(nick)]
	return ok
}

// whoisCommand handles WHOIS for a single target nickname.
func (s *Server) whoisCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		session.conn.Send(ircmsg.NoSuchNick(session.nick, ""))
		return
	}
	target := msg.Params[0]
	conn, ok := s.nicks[canonicalizeNick(target)]
	if !ok {
		session.conn.Send(ircmsg.NoSuchNick(session.nick, target))
		return
	}
	targetSession := s.sessions[conn]

	session.conn.Send(ircmsg.WhoisUser(session.nick, targetSession.nick, targetSession.user, targetSession.realName))
	session.conn.Send(ircmsg.WhoisServer(session.nick, targetSession.nick, s.cfg.ServerName, s.cfg.ServerInfo))
	session.conn.Send(ircmsg.EndOfWhois(session.nick, target))
}

// operCommand handles OPER, checking the supplied name/password against
// the configured operator credentials.
func (s *Server) operCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) < 2 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "OPER"))
		return
	}
	name, pass := msg.Params[0], msg.Params[1]

	want, ok := s.cfg.Opers[name]
	if !ok || want != pass {
		session.conn.Send(ircmsg.PasswdMismatch(session.nick))
		return
	}

	s.opers[canonicalizeNick(session.nick)] = struct{}{}
	session.conn.Send(ircmsg.YouAreOper(session.nick))
}

// awayCommand handles AWAY: an empty argument clears away status, any
// other text marks the session away with that message.
func (s *Server) awayCommand(session *Session, msg ircmsg.Message) {
	canon := canonicalizeNick(session.nick)

	if len(msg.Params) == 0 || strings.TrimSpace(msg.Params[0]) == "" {
		session.state = stateRegistered
		delete(s.away, canon)
		session.conn.Send(ircmsg.UnAway(session.nick))
		return
	}

	session.state = stateAway
	session.awayMessage = msg.Params[0]
	s.away[canon] = msg.Params[0]
	session.conn.Send(ircmsg.NowAway(session.nick))
}
