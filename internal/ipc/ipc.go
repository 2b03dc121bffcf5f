package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	log "log/slog"
)

// DefaultSocket is where the assistant listens for control commands.
const DefaultSocket = "/tmp/aura.sock"

// ControlMessage is one command sent over the control socket.
type ControlMessage struct {
	Cmd string `json:"cmd"`
	Arg string `json:"arg,omitempty"`
}

// Server accepts control messages on a unix socket.
type Server struct {
	ln   net.Listener
	path string
}

// Serve listens on path and invokes handler for every decoded message.
// Handlers run on the connection goroutine.
func Serve(path string, handler func(ControlMessage)) (*Server, error) {
	if path == "" {
		path = DefaultSocket
	}
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}

	s := &Server{ln: ln, path: path}
	go s.accept(handler)
	return s, nil
}

func (s *Server) accept(handler func(ControlMessage)) {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Debug("Control accept failed", "err", err)
			continue
		}
		go handleConn(conn, handler)
	}
}

func handleConn(conn net.Conn, handler func(ControlMessage)) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return
	}
	handler(msg)
}

// Close stops accepting and removes the socket file.
func (s *Server) Close() error {
	err := s.ln.Close()
	os.Remove(s.path)
	return err
}

// Send delivers one command to the assistant listening on path.
func Send(path, cmd, arg string) error {
	if path == "" {
		path = DefaultSocket
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(ControlMessage{Cmd: cmd, Arg: arg})
}
