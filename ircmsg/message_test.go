package ircmsg

import (
	"reflect"
	"testing"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Message
	}{
		{
			name: "simple command",
			line: "NICK alice\r\n",
			want: Message{Command: "NICK", Params: []string{"alice"}},
		},
		{
			name: "prefix and trailing",
			line: ":alice!alice@jusot.com PRIVMSG #x :hi there\r\n",
			want: Message{
				Prefix:  "alice!alice@jusot.com",
				Nick:    "alice",
				User:    "alice",
				Host:    "jusot.com",
				Command: "PRIVMSG",
				Params:  []string{"#x", "hi there"},
			},
		},
		{
			name: "no crlf still parses",
			line: "PING",
			want: Message{Command: "PING"},
		},
		{
			name: "lowercase command is canonicalised",
			line: "nick bob\r\n",
			want: Message{Command: "NICK", Params: []string{"bob"}},
		},
		{
			name: "leading spaces stripped",
			line: "   USER a 0 * :A Name\r\n",
			want: Message{Command: "USER", Params: []string{"a", "0", "*", "A Name"}},
		},
		{
			name: "empty line yields empty message",
			line: "\r\n",
			want: Message{},
		},
		{
			name: "blank line yields empty message",
			line: "",
			want: Message{},
		},
		{
			name: "prefix with no nick separators is a servername",
			line: ":irc.example.org NOTICE * :hi\r\n",
			want: Message{
				Prefix:  "irc.example.org",
				Nick:    "irc.example.org",
				Command: "NOTICE",
				Params:  []string{"*", "hi"},
			},
		},
		{
			name: "trailing with leading colon preserved",
			line: "PRIVMSG #x ::)\r\n",
			want: Message{Command: "PRIVMSG", Params: []string{"#x", ":)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMessage(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMessage(%q) = %+v, wanted %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseMessageOverlongLineIsTruncatedNotRejected(t *testing.T) {
	line := "PRIVMSG #x :" + string(make([]byte, 1000)) + "\r\n"
	m := ParseMessage(line)
	if m.Command != "PRIVMSG" {
		t.Fatalf("expected PRIVMSG to still parse from an overlong line, got %+v", m)
	}
}
