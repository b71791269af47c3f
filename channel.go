package main

import "strings"

// channelMode is a bitfield over the subset of channel modes this server
// implements: +m (moderated) and +t (topic locked to operators, stored but
// never consulted by the TOPIC handler). +v is not itself a mode flag here
// — voice is a per-member privilege, tracked in Channel.voices.
type channelMode uint8

const (
	modeModerated   channelMode = 1 << iota // m
	modeTopicLocked                         // t
)

// Channel holds membership and metadata for one channel. Created on first
// JOIN to an unknown name; destroyed once its membership becomes empty.
type Channel struct {
	name string

	// users is ordered by join time; the first joiner becomes the channel's
	// first operator.
	users []string

	operators map[string]struct{}
	voices    map[string]struct{}

	mode  channelMode
	topic string
}

func newChannel(name, firstNick string) *Channel {
	c := &Channel{
		name:      name,
		operators: make(map[string]struct{}),
		voices:    make(map[string]struct{}),
	}
	c.addUser(firstNick)
	c.operators[firstNick] = struct{}{}
	return c
}

func (c *Channel) hasUser(nick string) bool {
	for _, u := range c.users {
		if u == nick {
			return true
		}
	}
	return false
}

func (c *Channel) addUser(nick string) {
	c.users = append(c.users, nick)
}

// removeUser removes nick from users, operators, and voices. It reports
// whether the channel is now empty and should be destroyed.
func (c *Channel) removeUser(nick string) bool {
	for i, u := range c.users {
		if u == nick {
			c.users = append(c.users[:i], c.users[i+1:]...)
			break
		}
	}
	delete(c.operators, nick)
	delete(c.voices, nick)
	return len(c.users) == 0
}

// renameUser updates a member's entry in users/operators/voices after a
// NICK change, preserving any privilege the old nick held.
func (c *Channel) renameUser(oldNick, newNick string) {
	for i, u := range c.users {
		if u == oldNick {
			c.users[i] = newNick
			break
		}
	}
	if _, ok := c.operators[oldNick]; ok {
		delete(c.operators, oldNick)
		c.operators[newNick] = struct{}{}
	}
	if _, ok := c.voices[oldNick]; ok {
		delete(c.voices, oldNick)
		c.voices[newNick] = struct{}{}
	}
}

func (c *Channel) isOperator(nick string) bool {
	_, ok := c.operators[nick]
	return ok
}

func (c *Channel) isVoiced(nick string) bool {
	_, ok := c.voices[nick]
	return ok
}

// namesList renders the space-separated, @/+ adorned member list used in
// RPL_NAMREPLY. Operator adornment wins over voice.
func (c *Channel) namesList() string {
	parts := make([]string, 0, len(c.users))
	for _, nick := range c.users {
		switch {
		case c.isOperator(nick):
			parts = append(parts, "@"+nick)
		case c.isVoiced(nick):
			parts = append(parts, "+"+nick)
		default:
			parts = append(parts, nick)
		}
	}
	return strings.Join(parts, " ")
}

// modeString renders the channel's set flags as "+mt"-style text for
// RPL_CHANNELMODEIS.
func (c *Channel) modeString() string {
	s := "+"
	if c.mode&modeModerated != 0 {
		s += "m"
	}
	if c.mode&modeTopicLocked != 0 {
		s += "t"
	}
	return s
}
