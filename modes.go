package main

import "github.com/jusot/ircd/ircmsg"

// modeCommand handles MODE. A channel-mode command's first argument begins
// with '#'; anything else is a user-mode command.
func (s *Server) modeCommand(session *Session, msg ircmsg.Message) {
	if len(msg.Params) == 0 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "MODE"))
		return
	}

	if isChannelName(msg.Params[0]) {
		s.channelModeCommand(session, msg)
		return
	}
	s.userModeCommand(session, msg)
}

// userModeCommand handles the user-mode half of MODE: mostly silent, -o
// relays, unknown flags and mismatched targets are errors.
func (s *Server) userModeCommand(session *Session, msg ircmsg.Message) {
	target := msg.Params[0]

	if canonicalizeNick(target) != canonicalizeNick(session.nick) {
		session.conn.Send(ircmsg.UsersDontMatch(session.nick))
		return
	}

	if len(msg.Params) < 2 {
		return
	}
	flags := msg.Params[1]

	if flags == "-o" {
		session.conn.Send(ircmsg.ModeRelay(session.identity(), []string{target, "-o"}))
		return
	}

	if len(flags) < 2 || (flags[0] != '+' && flags[0] != '-') {
		session.conn.Send(ircmsg.UModeUnknownFlag(session.nick))
		return
	}

	switch flags[1] {
	case 'o':
		// +o for a user mode is not grantable via MODE; nothing else to do.
	default:
		session.conn.Send(ircmsg.UModeUnknownFlag(session.nick))
	}
}

// channelModeCommand handles the channel-mode half of MODE: querying the
// current flags with no argument, or setting/clearing m/t/v/o.
func (s *Server) channelModeCommand(session *Session, msg ircmsg.Message) {
	name := msg.Params[0]
	canon := canonicalizeChannel(name)

	ch, ok := s.channels[canon]
	if !ok {
		session.conn.Send(ircmsg.NoSuchChannel(session.nick, name))
		return
	}

	if len(msg.Params) < 2 {
		session.conn.Send(ircmsg.ChannelModeIs(session.nick, name, ch.modeString()))
		return
	}

	flags := msg.Params[1]
	if len(flags) < 2 || (flags[0] != '+' && flags[0] != '-') {
		session.conn.Send(ircmsg.UnknownMode(session.nick, flags))
		return
	}
	setting := flags[0] == '+'
	char := flags[1]

	switch char {
	case 'm', 't':
		s.setChannelFlag(session, ch, name, char, setting)
	case 'v', 'o':
		s.setChannelMember(session, ch, name, char, setting, msg)
	default:
		session.conn.Send(ircmsg.UnknownMode(session.nick, string(char)))
	}
}

func (s *Server) setChannelFlag(session *Session, ch *Channel, name string, char byte, setting bool) {
	if !ch.isOperator(session.nick) {
		session.conn.Send(ircmsg.ChanOPrivsNeeded(session.nick, name))
		return
	}

	var bit channelMode
	if char == 'm' {
		bit = modeModerated
	} else {
		bit = modeTopicLocked
	}

	line := ircmsg.ModeRelay(session.identity(), []string{name, modeFlagString(setting, char)})

	if setting {
		ch.mode |= bit
		for _, member := range ch.users {
			if conn, ok := s.nicks[canonicalizeNick(member)]; ok {
				conn.Send(line)
			}
		}
		return
	}

	// Clearing a flag only notifies the sender; setting it broadcasts to
	// every member. The asymmetry is intentional even though it looks like
	// a bug.
	ch.mode &^= bit
	session.conn.Send(line)
}

func (s *Server) setChannelMember(session *Session, ch *Channel, name string, char byte, setting bool, msg ircmsg.Message) {
	if !ch.isOperator(session.nick) {
		session.conn.Send(ircmsg.ChanOPrivsNeeded(session.nick, name))
		return
	}
	if len(msg.Params) < 3 {
		session.conn.Send(ircmsg.NeedMoreParams(session.nick, "MODE"))
		return
	}

	targetNick := msg.Params[2]
	if !ch.hasUser(targetNick) {
		session.conn.Send(ircmsg.UserNotInChannel(session.nick, targetNick, name))
		return
	}

	set := ch.voices
	if char == 'o' {
		set = ch.operators
	}

	if setting {
		set[targetNick] = struct{}{}
	} else {
		delete(set, targetNick)
	}

	line := ircmsg.ModeRelay(session.identity(), []string{name, modeFlagString(setting, char), targetNick})
	for _, member := range ch.users {
		if conn, ok := s.nicks[canonicalizeNick(member)]; ok {
			conn.Send(line)
		}
	}
}

func modeFlagString(setting bool, char byte) string {
	if setting {
		return "+" + string(char)
	}
	return "-" + string(char)
}
