package main

import (
	"sort"
	"strings"

	"github.com/jusot/ircd/ircmsg"
)

// joinCommand handles JOIN: creating a channel on first join to an unknown
// name, or adding the member to one that already exists.
func (s *Server) joinCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "JOIN"))
		return
	}
	name := msg.Params[0]
	if !isValidChannel(name) {
		session.conn.Send(ircmsg.NoSuchChannel(session.nick, name))
		return
	}
	canon := canonicalizeChannel(name)

	ch, exists := s.channels[canon]
	if !exists {
		ch = newChannel(canon, session.nick)
		s.channels[canon] = ch
	} else {
		if ch.hasUser(session.nick) {
			return
		}
		ch.addUser(session.nick)
	}

	line := ircmsg.Join(session.identity(), name)
	for _, member := range ch.users {
		if conn, ok := s.nicks[canonicalizeNick(member)]; ok {
			conn.Send(line)
		}
	}

	if ch.topic != "" {
		session.conn.Send(ircmsg.Topic(session.nick, name, ch.topic))
	}

	session.conn.Send(ircmsg.NamReply(session.nick, name, ch.namesList()))
	session.conn.Send(ircmsg.EndOfNames(session.nick, name))
}

// partCommand handles PART, destroying the channel once its last member
// leaves.
func (s *Server) partCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "PART"))
		return
	}
	name := msg.Params[0]
	canon := canonicalizeChannel(name)

	ch, ok := s.channels[canon]
	if !ok {
		session.conn.Send(ircmsg.NoSuchChannel(session.nick, name))
		return
	}
	if !ch.hasUser(session.nick) {
		session.conn.Send(ircmsg.NotOnChannel(session.nick, name))
		return
	}

	message := ""
	if len(msg.Params) > 1 {
		message = msg.Params[1]
	}

	line := ircmsg.Part(session.identity(), name, message)
	for _, member := range ch.users {
		if conn, ok := s.nicks[canonicalizeNick(member)]; ok {
			conn.Send(line)
		}
	}

	if ch.removeUser(session.nick) {
		delete(s.channels, canon)
	}
}

// topicCommand handles TOPIC: with no second parameter it queries the
// current topic, otherwise it sets and relays it. +t is stored on the
// channel but never consulted here — operators and non-operators alike
// may set the topic.
func (s *Server) topicCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "TOPIC"))
		return
	}
	name := msg.Params[0]
	canon := canonicalizeChannel(name)

	ch, ok := s.channels[canon]
	if !ok {
		session.conn.Send(ircmsg.NoSuchChannel(session.nick, name))
		return
	}
	if !ch.hasUser(session.nick) {
		session.conn.Send(ircmsg.NotOnChannel(session.nick, name))
		return
	}

	if len(msg.Params) < 2 {
		if ch.topic == "" {
			session.conn.Send(ircmsg.NoTopic(session.nick, name))
		} else {
			session.conn.Send(ircmsg.Topic(session.nick, name, ch.topic))
		}
		return
	}

	ch.topic = msg.Params[1]

	line := ircmsg.TopicRelay(session.identity(), name, ch.topic)
	for _, member := range ch.users {
		if conn, ok := s.nicks[canonicalizeNick(member)]; ok {
			conn.Send(line)
		}
	}
}

// namesCommand handles NAMES. With no argument it lists every channel's
// membership followed by a synthetic "*" entry for registered users who
// are in no channel at all.
func (s *Server) namesCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) > 0 {
		name := msg.Params[0]
		if ch, ok := s.channels[canonicalizeChannel(name)]; ok {
			session.conn.Send(ircmsg.NamReply(session.nick, name, ch.namesList()))
		}
		session.conn.Send(ircmsg.EndOfNames(session.nick, name))
		return
	}

	inChannel := map[string]struct{}{}

	names := make([]string, 0, len(s.channels))
	for name := range s.channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ch := s.channels[name]
		session.conn.Send(ircmsg.NamReply(session.nick, ch.name, ch.namesList()))
		for _, member := range ch.users {
			inChannel[canonicalizeNick(member)] = struct{}{}
		}
	}

	var orphans []string
	for canon, conn := range s.nicks {
		if _, ok := inChannel[canon]; ok {
			continue
		}
		if sess, ok := s.sessions[conn]; ok && sess.registered() {
			orphans = append(orphans, sess.nick)
		}
	}
	sort.Strings(orphans)
	if len(orphans) > 0 {
		session.conn.Send(ircmsg.NamReply(session.nick, "*", strings.Join(orphans, " ")))
	}

	session.conn.Send(ircmsg.EndOfNames(session.nick, "*"))
}

// listCommand handles LIST, reporting each channel's member count and
// topic.
func (s *Server) listCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) > 0 {
		name := msg.Params[0]
		if ch, ok := s.channels[canonicalizeChannel(name)]; ok {
			session.conn.Send(ircmsg.List(session.nick, name, len(ch.users), ch.topic))
		}
		session.conn.Send(ircmsg.ListEnd(session.nick))
		return
	}

	names := make([]string, 0, len(s.channels))
	for name := range s.channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ch := s.channels[name]
		session.conn.Send(ircmsg.List(session.nick, ch.name, len(ch.users), ch.topic))
	}
	session.conn.Send(ircmsg.ListEnd(session.nick))
}
