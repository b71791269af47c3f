package main

import (
	"strings"

	"github.com/jusot/ircd/ircmsg"
)

// maxChannelLength is the RFC 2812 channel name limit.
const maxChannelLength = 50

// casemapUpperToLower applies the traditional IRC "rfc1459" casemap, where
// {}|^ are the lowercase equivalents of []\~. This is the same table the
// teacher's TestCanonicalizeNick exercises.
var casemapUpperToLower = strings.NewReplacer(
	"[", "{",
	"]", "}",
	"\\", "|",
	"~", "^",
)

// canonicalizeNick converts a nick to its canonical comparison form. It
// does not validate or trim the input.
func canonicalizeNick(n string) string {
	return casemapUpperToLower.Replace(strings.ToLower(n))
}

// canonicalizeChannel converts a channel name to its canonical comparison
// form.
func canonicalizeChannel(c string) string {
	return strings.ToLower(c)
}

// isChannelName reports whether target names a channel rather than a
// nickname: channel names begin with '#'.
func isChannelName(target string) bool {
	return strings.HasPrefix(target, "#")
}

// isValidChannel reports whether c is a well-formed channel name: '#'
// followed by at least one more character, within the RFC 2812 length
// limit.
func isValidChannel(c string) bool {
	return len(c) > 1 && len(c) <= maxChannelLength && c[0] == '#'
}

// ircPrefix formats the nick!user@host source used on relayed messages.
func ircPrefix(nick, user string) string {
	return ircmsg.ClientPrefix(nick, user)
}
