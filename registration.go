package main

import "github.com/jusot/ircd/ircmsg"

// nickCommand handles NICK in every lifecycle state: claiming a nick
// before registration, completing registration once both NICK and USER
// have arrived, and renaming a fully registered session, which requires
// updating every index that keys off the old nick and relaying the change
// to the renaming client and its channel co-members (see DESIGN.md,
// "Open question decisions").
func (s *Server) nickCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		session.conn.Send(ircmsg.NoNicknameGiven())
		return
	}
	wanted := msg.Params[0]
	canon := canonicalizeNick(wanted)

	if existing, ok := s.nicks[canon]; ok && existing != session.conn {
		session.conn.Send(ircmsg.NicknameInUse(session.nick, wanted))
		return
	}

	switch session.state {
	case stateNone:
		session.nick = wanted
		session.state = stateNick
		s.nicks[canon] = session.conn

	case stateUser:
		session.nick = wanted
		s.nicks[canon] = session.conn
		s.completeRegistration(session)

	case stateNick:
		oldCanon := canonicalizeNick(session.nick)
		delete(s.nicks, oldCanon)
		s.nicks[canon] = session.conn
		session.nick = wanted

	case stateRegistered, stateAway:
		oldNick := session.nick
		oldCanon := canonicalizeNick(oldNick)
		delete(s.nicks, oldCanon)
		s.nicks[canon] = session.conn
		session.nick = wanted

		if msg2, ok := s.away[oldCanon]; ok {
			delete(s.away, oldCanon)
			s.away[canon] = msg2
		}
		if _, ok := s.opers[oldCanon]; ok {
			delete(s.opers, oldCanon)
			s.opers[canon] = struct{}{}
		}

		s.renameInChannels(oldNick, wanted)

		line := ircmsg.NickRelay(ircPrefix(oldNick, session.user), wanted)
		session.conn.Send(line)
		s.relayToChannelsOfExcept(wanted, session.conn, line)
	}
}

// userCommand handles USER: it only ever sets a session's username and
// real name, and completes registration if a nick has already been
// claimed.
func (s *Server) userCommand(session *Session, msg ircmsg.Message) {
	if session.state == stateRegistered || session.state == stateAway {
		session.conn.Send(ircmsg.AlreadyRegistered(session.nick))
		return
	}

	if len(msg.Params) != 4 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "USER"))
		return
	}

	session.user = msg.Params[0]
	session.realName = msg.Params[3]

	switch session.state {
	case stateNone:
		session.state = stateUser
	case stateNick:
		s.completeRegistration(session)
	}
}

// completeRegistration sends the welcome bundle: 001-004, the LUSERS
// reply, and the MOTD.
func (s *Server) completeRegistration(session *Session) {
	session.state = stateRegistered

	session.conn.Send(ircmsg.Welcome(session.nick, session.user))
	session.conn.Send(ircmsg.YourHost(session.nick, s.cfg.ServerName, s.cfg.Version))
	session.conn.Send(ircmsg.Created(session.nick, s.cfg.CreatedDate))
	session.conn.Send(ircmsg.MyInfo(session.nick, s.cfg.ServerName, s.cfg.Version))

	s.sendLusers(session)
	s.sendMotd(session)
}

// renameInChannels updates every channel's membership/privilege sets to
// reflect a nick change.
func (s *Server) renameInChannels(oldNick, newNick string) {
	for _, ch := range s.channels {
		if ch.hasUser(oldNick) {
			ch.renameUser(oldNick, newNick)
		}
	}
}

// relayToChannelsOfExcept sends line once to every distinct co-member
// across every channel nick is on, skipping except.
func (s *Server) relayToChannelsOfExcept(nick string, except Connection, line string) {
	sent := map[Connection]struct{}{except: {}}
	for _, ch := range s.channels {
		if !ch.hasUser(nick) {
			continue
		}
		for _, member := range ch.users {
			conn, ok := s.nicks[canonicalizeNick(member)]
			if !ok {
				continue
			}
			if _, done := sent[conn]; done {
				continue
			}
			conn.Send(line)
			sent[conn] = struct{}{}
		}
	}
}
