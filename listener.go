package main

import (
	"log"
	"net"
)

// listenAndServe accepts connections on addr and hands each to the server.
// Grounded on horgh-catbox's acceptConnections/readLoop split: one
// goroutine accepts, one goroutine per connection reads lines, and a
// bounded semaphore limits how many of those read goroutines may be
// concurrently handing an event to the server's single owning goroutine.
func (s *Server) listenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer func() { _ = ln.Close() }()

	log.Printf("Listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	nc := newNetConn(s.nextID(), conn)
	s.events <- event{kind: eventConnect, conn: nc}

	readLines(conn,
		func(line string) {
			s.workerSem <- struct{}{}
			s.events <- event{kind: eventLine, conn: nc, line: line}
			<-s.workerSem
		},
		func() {
			s.events <- event{kind: eventDisconnect, conn: nc}
		},
	)
}
