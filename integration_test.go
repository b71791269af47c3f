package main

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/jusot/ircd/ircmsg"
	"github.com/stretchr/testify/require"
)

// register drives a fakeConn through NICK/USER and returns the resulting
// session, draining the welcome bundle off the connection.
func register(s *Server, conn *fakeConn, nick, user string) *Session {
	s.handleConnect(conn)
	s.handleLine(conn, "NICK "+nick)
	s.handleLine(conn, "USER "+user+" 0 * :"+user+" Real Name")
	return s.sessions[conn]
}

// Completing NICK/USER should send the welcome bundle: 001-004, LUSERS
// (251-255), and the MOTD (422 since no MOTD file exists here).
func TestRegistrationSendsWelcomeBundle(t *testing.T) {
	s := newServer(defaultConfig())
	s.cfg.MotdFile = "/nonexistent/motd"
	conn := newFakeConn("alice-conn")

	register(s, conn, "alice", "alice")

	lines := conn.sent()
	require.NotEmpty(t, lines, "expected a welcome bundle")

	want := ":jusot.com 001 alice :Welcome to the Internet Relay Network alice!alice@.jusot.com\r\n"
	require.Equal(t, want, lines[0])

	codes := []string{"002", "003", "004", "251", "252", "253", "254", "255"}
	require.True(t, len(lines) > len(codes), "expected at least %d lines after 001", len(codes))
	for i, code := range codes {
		msg := ircmsg.ParseMessage(lines[i+1])
		require.Equal(t, code, msg.Command, "line %d", i+1)
	}

	last := lines[len(lines)-1]
	require.Equal(t, "422", ircmsg.ParseMessage(last).Command, "expected a trailing 422 (no MOTD file)")
}

// When two clients claim the same nickname, the first wins and the second
// gets ERR_NICKNAMEINUSE.
func TestNickCollisionRejectsSecondClient(t *testing.T) {
	s := newServer(defaultConfig())
	connA := newFakeConn("a")
	connB := newFakeConn("b")

	s.handleConnect(connA)
	s.handleConnect(connB)

	s.handleLine(connA, "NICK bob")
	s.handleLine(connB, "NICK bob")

	require.Equal(t, "bob", s.sessions[connA].nick)

	bLines := connB.sent()
	require.Len(t, bLines, 1)
	require.Equal(t, ":jusot.com 433 * bob :Nickname is already in use\r\n", bLines[0])
}

// A channel message is relayed to every other member, never back to its
// sender.
func TestChannelMessageFansOutExceptToSender(t *testing.T) {
	s := newServer(defaultConfig())
	s.cfg.MotdFile = "/nonexistent/motd"
	aliceConn := newFakeConn("alice-conn")
	carolConn := newFakeConn("carol-conn")

	register(s, aliceConn, "alice", "alice")
	register(s, carolConn, "carol", "carol")

	s.handleLine(aliceConn, "JOIN #x")
	s.handleLine(carolConn, "JOIN #x")

	aliceConn.mu.Lock()
	aliceConn.lines = nil
	aliceConn.mu.Unlock()
	carolConn.mu.Lock()
	carolConn.lines = nil
	carolConn.mu.Unlock()

	s.handleLine(aliceConn, "PRIVMSG #x :hi")

	carolLines := carolConn.sent()
	require.Len(t, carolLines, 1)
	require.Equal(t, ":alice!alice@jusot.com PRIVMSG #x :hi\r\n", carolLines[0])

	require.Empty(t, aliceConn.sent(), "alice should receive nothing from her own message")
}

// A non-operator setting a channel mode gets ERR_CHANOPRIVSNEEDED and the
// mode stays unset.
func TestChannelModeRequiresOperator(t *testing.T) {
	s := newServer(defaultConfig())
	s.cfg.MotdFile = "/nonexistent/motd"
	aliceConn := newFakeConn("alice-conn")
	bobConn := newFakeConn("bob-conn")

	register(s, aliceConn, "alice", "alice")
	register(s, bobConn, "bob", "bob")

	s.handleLine(aliceConn, "JOIN #x")
	s.handleLine(bobConn, "JOIN #x")

	bobConn.mu.Lock()
	bobConn.lines = nil
	bobConn.mu.Unlock()

	s.handleLine(bobConn, "MODE #x +m")

	bobLines := bobConn.sent()
	require.Len(t, bobLines, 1)
	require.Equal(t, ":jusot.com 482 bob #x :You're not channel operator\r\n", bobLines[0])

	ch := s.channels["#x"]
	require.Zero(t, ch.mode&modeModerated, "expected +m to remain unset after a non-operator's attempt")
}

// PRIVMSG to an away session is answered with RPL_AWAY instead of being
// delivered.
func TestPrivmsgToAwaySessionGetsAwayReply(t *testing.T) {
	s := newServer(defaultConfig())
	s.cfg.MotdFile = "/nonexistent/motd"
	aliceConn := newFakeConn("alice-conn")
	bobConn := newFakeConn("bob-conn")

	register(s, aliceConn, "alice", "alice")
	register(s, bobConn, "bob", "bob")

	aliceConn.mu.Lock()
	aliceConn.lines = nil
	aliceConn.mu.Unlock()
	bobConn.mu.Lock()
	bobConn.lines = nil
	bobConn.mu.Unlock()

	s.handleLine(aliceConn, "AWAY :lunch")
	aliceLines := aliceConn.sent()
	require.Len(t, aliceLines, 1)
	require.Equal(t, ":jusot.com 306 alice :You have been marked as being away\r\n", aliceLines[0])

	s.handleLine(bobConn, "PRIVMSG alice :yo")
	bobLines := bobConn.sent()
	require.Len(t, bobLines, 1)
	require.Equal(t, ":jusot.com 301 bob alice :lunch\r\n", bobLines[0])

	require.Len(t, aliceConn.sent(), 1, "alice should receive nothing further")
}

// A channel is destroyed once its last member parts, and no longer
// appears in LIST.
func TestChannelIsDestroyedWhenLastMemberParts(t *testing.T) {
	s := newServer(defaultConfig())
	s.cfg.MotdFile = "/nonexistent/motd"
	aliceConn := newFakeConn("alice-conn")

	register(s, aliceConn, "alice", "alice")
	s.handleLine(aliceConn, "JOIN #x")

	_, ok := s.channels["#x"]
	require.True(t, ok, "expected #x to exist after JOIN")

	s.handleLine(aliceConn, "PART #x")

	_, ok = s.channels["#x"]
	require.False(t, ok, "expected #x to be destroyed once its last member parts")

	aliceConn.mu.Lock()
	aliceConn.lines = nil
	aliceConn.mu.Unlock()

	s.handleLine(aliceConn, "LIST")
	for _, line := range aliceConn.sent() {
		msg := ircmsg.ParseMessage(line)
		require.NotEqual(t, "322", msg.Command, "LIST should not mention destroyed channel #x")
	}
}

// TestEndToEndOverRealSocket exercises the full listener/server wiring over
// an actual TCP connection rather than fakeConn, confirming readLines,
// netConn's writeLoop, and the event channel glue all cooperate.
func TestEndToEndOverRealSocket(t *testing.T) {
	cfg := defaultConfig()
	cfg.MotdFile = "/nonexistent/motd"
	s := newServer(cfg)
	go s.run()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serveConn(conn)
		}
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	_, err = conn.Write([]byte("NICK alice\r\nUSER alice 0 * :Alice A\r\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)

	want := ":jusot.com 001 alice :Welcome to the Internet Relay Network alice!alice@.jusot.com\r\n"
	require.Equal(t, want, line)
}
