package ircmsg

import (
	"strconv"
	"strings"
)

// ServerPrefix is the fixed server name used as the source of
// server-originated replies. It is a package-level variable rather than a
// hardcoded literal only so a server can rebrand it from its own
// configuration; it defaults to the name this protocol subset was built
// around.
var ServerPrefix = "jusot.com"

// build assembles a wire line: "<prefix> <command> <middles...> [:<trailing>]".
// It truncates to 510 bytes (leaving room for the CRLF) per the protocol's
// hard 512-byte line limit, and always appends CRLF.
func build(prefix, command string, middles []string, trailing string, hasTrailing bool) string {
	var b strings.Builder

	if prefix != "" {
		b.WriteByte(':')
		b.WriteString(prefix)
		b.WriteByte(' ')
	}
	b.WriteString(command)

	for _, m := range middles {
		b.WriteByte(' ')
		b.WriteString(m)
	}

	if hasTrailing {
		b.WriteString(" :")
		b.WriteString(trailing)
	}

	line := b.String()
	if len(line) > MaxLineLength-2 {
		line = line[:MaxLineLength-2]
	}

	return line + "\r\n"
}

// numeric builds a server numeric reply. The target is conventionally the
// receiving client's current nickname, or "*" before one is assigned.
func numeric(code, target string, middles []string, trailing string) string {
	all := append([]string{target}, middles...)
	return build(ServerPrefix, code, all, trailing, true)
}

// numericNoTrailing builds a numeric reply whose last middle parameter is
// not colon-prefixed (used only by RPL_CHANNELMODEIS, which has no free-text
// trailing component).
func numericNoTrailing(code, target string, middles []string) string {
	all := append([]string{target}, middles...)
	return build(ServerPrefix, code, all, "", false)
}

// ClientPrefix formats the "nick!user@host" source used on relayed client
// messages.
func ClientPrefix(nick, user string) string {
	return nick + "!" + user + "@" + ServerPrefix
}

// Registration / welcome bundle.

func Welcome(nick, user string) string {
	return numeric("001", nick, nil,
		"Welcome to the Internet Relay Network "+nick+"!"+user+"@."+ServerPrefix)
}

func YourHost(nick, serverName, version string) string {
	return numeric("002", nick, nil,
		"Your host is "+serverName+", running version "+version)
}

func Created(nick, createdDate string) string {
	return numeric("003", nick, nil, "This server was created "+createdDate)
}

func MyInfo(nick, serverName, version string) string {
	return build(ServerPrefix, "004",
		[]string{nick, serverName, version, "o", "otmv"}, "", false)
}

// LUSERS bundle.

func LUserClient(nick string, users int) string {
	return numeric("251", nick, nil,
		"There are "+strconv.Itoa(users)+" users and 0 invisible on 1 server")
}

func LUserOp(nick string, ops int) string {
	return numeric("252", nick, []string{strconv.Itoa(ops)}, "operator(s) online")
}

func LUserUnknown(nick string, unknown int) string {
	return numeric("253", nick, []string{strconv.Itoa(unknown)}, "unknown connection(s)")
}

func LUserChannels(nick string, channels int) string {
	return numeric("254", nick, []string{strconv.Itoa(channels)}, "channels formed")
}

func LUserMe(nick string, users int) string {
	return numeric("255", nick, nil, "I have "+strconv.Itoa(users)+" clients and 1 servers")
}

// Away.

func Away(nick, target, message string) string {
	return numeric("301", nick, []string{target}, message)
}

func UnAway(nick string) string {
	return numeric("305", nick, nil, "You are no longer marked as being away")
}

func NowAway(nick string) string {
	return numeric("306", nick, nil, "You have been marked as being away")
}

// WHOIS.

func WhoisUser(nick, targetNick, targetUser, realName string) string {
	return numeric("311", nick,
		[]string{targetNick, targetUser, ServerPrefix, "*"}, realName)
}

func WhoisServer(nick, targetNick, serverName, serverInfo string) string {
	return numeric("312", nick, []string{targetNick, serverName}, serverInfo)
}

func EndOfWhois(nick, targetNick string) string {
	return numeric("318", nick, []string{targetNick}, "End of WHOIS list")
}

// LIST.

func List(nick, channel string, memberCount int, topic string) string {
	return numeric("322", nick, []string{channel, strconv.Itoa(memberCount)}, topic)
}

func ListEnd(nick string) string {
	return numeric("323", nick, nil, "End of LIST")
}

// MODE query.

func ChannelModeIs(nick, channel, modes string) string {
	return numericNoTrailing("324", nick, []string{channel, modes})
}

// TOPIC.

func NoTopic(nick, channel string) string {
	return numeric("331", nick, []string{channel}, "No topic is set")
}

func Topic(nick, channel, topic string) string {
	return numeric("332", nick, []string{channel}, topic)
}

// NAMES.

func NamReply(nick, channel, names string) string {
	return numeric("353", nick, []string{"=", channel}, names)
}

func EndOfNames(nick, channel string) string {
	return numeric("366", nick, []string{channel}, "End of NAMES list")
}

// MOTD.

func Motd(nick, line string) string {
	return numeric("372", nick, nil, line)
}

func MotdStart(nick, serverName string) string {
	return numeric("375", nick, nil, "- "+serverName+" Message of the day - ")
}

func EndOfMotd(nick string) string {
	return numeric("376", nick, nil, "End of MOTD command")
}

// OPER.

func YouAreOper(nick string) string {
	return numeric("381", nick, nil, "You are now an IRC operator")
}

// Errors.

func NoSuchNick(nick, target string) string {
	return numeric("401", nick, []string{target}, "No such nick/channel")
}

func NoSuchChannel(nick, channel string) string {
	return numeric("403", nick, []string{channel}, "No such channel")
}

func CannotSendToChan(nick, channel string) string {
	return numeric("404", nick, []string{channel}, "Cannot send to channel")
}

func NoRecipient(nick, command string) string {
	return numeric("411", nick, nil, "No recipient given ("+command+")")
}

func NoTextToSend(nick string) string {
	return numeric("412", nick, nil, "No text to send")
}

func UnknownCommand(nick, command string) string {
	return numeric("421", nick, []string{command}, "Unknown command")
}

func NoMotd(nick string) string {
	return numeric("422", nick, nil, "MOTD File is missing")
}

func NoNicknameGiven() string {
	return numeric("431", "*", nil, "No nickname given")
}

func NicknameInUse(nick, wanted string) string {
	return numeric("433", nick, []string{wanted}, "Nickname is already in use")
}

func UserNotInChannel(nick, targetNick, channel string) string {
	return numeric("441", nick, []string{targetNick, channel}, "They aren't on that channel")
}

func NotOnChannel(nick, channel string) string {
	return numeric("442", nick, []string{channel}, "You're not on that channel")
}

func NeedMoreParams(nick, command string) string {
	return numeric("461", nick, []string{command}, "Not enough parameters")
}

func AlreadyRegistered(nick string) string {
	return numeric("462", nick, nil, "You may not reregister")
}

func PasswdMismatch(nick string) string {
	return numeric("464", nick, nil, "Password incorrect")
}

func UnknownMode(nick, char string) string {
	return numeric("472", nick, []string{char}, "is unknown mode char to me")
}

func ChanOPrivsNeeded(nick, channel string) string {
	return numeric("482", nick, []string{channel}, "You're not channel operator")
}

func UModeUnknownFlag(nick string) string {
	return numeric("501", nick, nil, "Unknown MODE flag")
}

func UsersDontMatch(nick string) string {
	return numeric("502", nick, nil, "Cannot change mode for other users")
}

func NotRegistered(nick string) string {
	return numeric("451", nick, nil, "You have not registered")
}

// Relayed client commands. These carry a "nick!user@host" prefix rather
// than the server prefix.

func PrivMsg(prefix, target, text string) string {
	return build(prefix, "PRIVMSG", []string{target}, text, true)
}

func Notice(prefix, target, text string) string {
	return build(prefix, "NOTICE", []string{target}, text, true)
}

func Join(prefix, channel string) string {
	return build(prefix, "JOIN", []string{channel}, "", false)
}

func Part(prefix, channel, message string) string {
	if message == "" {
		return build(prefix, "PART", []string{channel}, "", false)
	}
	return build(prefix, "PART", []string{channel}, message, true)
}

func TopicRelay(prefix, channel, topic string) string {
	return build(prefix, "TOPIC", []string{channel}, topic, true)
}

func NickRelay(prefix, newNick string) string {
	return build(prefix, "NICK", nil, newNick, true)
}

func QuitRelay(prefix, message string) string {
	return build(prefix, "QUIT", nil, message, true)
}

func ModeRelay(prefix string, params []string) string {
	return build(prefix, "MODE", params, "", false)
}

func Pong() string {
	return build(ServerPrefix, "PONG", nil, ServerPrefix, true)
}

func Error(message string) string {
	return build("", "ERROR", nil, message, true)
}
