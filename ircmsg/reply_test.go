package ircmsg

import (
	"strings"
	"testing"
)

func TestWelcome(t *testing.T) {
	got := Welcome("alice", "alice")
	want := ":jusot.com 001 alice :Welcome to the Internet Relay Network alice!alice@.jusot.com\r\n"
	if got != want {
		t.Errorf("Welcome() = %q, wanted %q", got, want)
	}
}

func TestNicknameInUse(t *testing.T) {
	got := NicknameInUse("*", "bob")
	want := ":jusot.com 433 * bob :Nickname is already in use\r\n"
	if got != want {
		t.Errorf("NicknameInUse() = %q, wanted %q", got, want)
	}
}

func TestPrivMsgRelay(t *testing.T) {
	got := PrivMsg(ClientPrefix("alice", "alice"), "#x", "hi")
	want := ":alice!alice@jusot.com PRIVMSG #x :hi\r\n"
	if got != want {
		t.Errorf("PrivMsg() = %q, wanted %q", got, want)
	}
}

func TestAwayReply(t *testing.T) {
	got := Away("bob", "alice", "lunch")
	want := ":jusot.com 301 bob alice :lunch\r\n"
	if got != want {
		t.Errorf("Away() = %q, wanted %q", got, want)
	}
}

func TestChanOPrivsNeeded(t *testing.T) {
	got := ChanOPrivsNeeded("bob", "#x")
	want := ":jusot.com 482 bob #x :You're not channel operator\r\n"
	if got != want {
		t.Errorf("ChanOPrivsNeeded() = %q, wanted %q", got, want)
	}
}

func TestEveryLineEndsInCRLF(t *testing.T) {
	lines := []string{
		Welcome("alice", "alice"),
		YourHost("alice", "jusot.com", "1.0"),
		MyInfo("alice", "jusot.com", "1.0"),
		NoTopic("alice", "#x"),
		PrivMsg(ClientPrefix("alice", "alice"), "#x", "hi"),
		Error("bye"),
	}
	for _, l := range lines {
		if !strings.HasSuffix(l, "\r\n") {
			t.Errorf("line %q does not end in CRLF", l)
		}
		if strings.Count(l, "\r\n") != 1 {
			t.Errorf("line %q has embedded CRLF", l)
		}
	}
}

func TestLineLengthNeverExceedsProtocolLimit(t *testing.T) {
	longTopic := strings.Repeat("x", 1000)
	line := Topic("alice", "#channel", longTopic)
	if len(line) > MaxLineLength {
		t.Errorf("line length %d exceeds %d", len(line), MaxLineLength)
	}
	if !strings.HasSuffix(line, "\r\n") {
		t.Errorf("truncated line lost its CRLF terminator: %q", line)
	}
}

func TestNamReplyAdornment(t *testing.T) {
	got := NamReply("alice", "#x", "@alice +bob carol")
	want := ":jusot.com 353 alice = #x :@alice +bob carol\r\n"
	if got != want {
		t.Errorf("NamReply() = %q, wanted %q", got, want)
	}
}
