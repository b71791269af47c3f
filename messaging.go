package main

import "github.com/jusot/ircd/ircmsg"

// privmsgCommand handles both PRIVMSG and NOTICE. NOTICE differs only in
// replying with no errors at all, per RFC's "do not reply to a NOTICE"
// rule.
func (s *Server) privmsgCommand(session *Session, msg ircmsg.Message) {
	isNotice := msg.Command == "NOTICE"

	if len(msg.Params) == 0 {
		if !isNotice {
			session.conn.Send(ircmsg.NoRecipient(session.nick, msg.Command))
		}
		return
	}
	target := msg.Params[0]

	if len(msg.Params) < 2 {
		if !isNotice {
			session.conn.Send(ircmsg.NoTextToSend(session.nick))
		}
		return
	}
	text := msg.Params[1]

	if isChannelName(target) {
		s.sendChannelMessage(session, target, text, isNotice)
		return
	}

	s.sendPrivateMessage(session, target, text, isNotice)
}

func (s *Server) sendPrivateMessage(session *Session, target, text string, isNotice bool) {
	canon := canonicalizeNick(target)
	conn, ok := s.nicks[canon]
	if !ok {
		if !isNotice {
			session.conn.Send(ircmsg.NoSuchNick(session.nick, target))
		}
		return
	}

	if awayMsg, isAway := s.away[canon]; isAway {
		if !isNotice {
			session.conn.Send(ircmsg.Away(session.nick, target, awayMsg))
		}
		return
	}

	line := ircmsg.PrivMsg(session.identity(), target, text)
	if isNotice {
		line = ircmsg.Notice(session.identity(), target, text)
	}
	conn.Send(line)
}

func (s *Server) sendChannelMessage(session *Session, target, text string, isNotice bool) {
	canon := canonicalizeChannel(target)
	ch, ok := s.channels[canon]
	if !ok {
		if !isNotice {
			session.conn.Send(ircmsg.NoSuchNick(session.nick, target))
		}
		return
	}

	if !ch.hasUser(session.nick) {
		if !isNotice {
			session.conn.Send(ircmsg.CannotSendToChan(session.nick, target))
		}
		return
	}

	line := ircmsg.PrivMsg(session.identity(), target, text)
	if isNotice {
		line = ircmsg.Notice(session.identity(), target, text)
	}

	for _, member := range ch.users {
		if member == session.nick {
			continue
		}
		if conn, ok := s.nicks[canonicalizeNick(member)]; ok {
			conn.Send(line)
		}
	}
}
