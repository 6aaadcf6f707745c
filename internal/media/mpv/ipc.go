package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
)

// command is the JSON structure sent to mpv's IPC socket.
type command struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// message is anything mpv writes back: command replies carry request_id
// and error, events carry event and the event-specific fields.
type message struct {
	Event     string          `json:"event"`
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
	Error     string          `json:"error"`
	Reason    string          `json:"reason"`
	FileError string          `json:"file_error"`
}

const maxLineSize = 1 << 20

// conn is a persistent IPC connection. Commands are written without waiting
// for their reply; replies and events arrive through the read loop.
type conn struct {
	c      net.Conn
	mu     sync.Mutex
	nextID int64
	closed bool
}

func dial(socketPath string) (*conn, error) {
	c, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &conn{c: c}, nil
}

// send writes one newline-terminated command and returns its request id.
func (c *conn) send(args ...any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, errClosed
	}

	c.nextID++
	payload, err := json.Marshal(command{Command: args, RequestID: c.nextID})
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}
	if _, err := c.c.Write(append(payload, '\n')); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return c.nextID, nil
}

// readLoop decodes newline-delimited messages until the connection closes.
func (c *conn) readLoop(handle func(message)) error {
	scanner := bufio.NewScanner(c.c)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		var msg message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		handle(msg)
	}
	return scanner.Err()
}

func (c *conn) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.c.Close()
}
