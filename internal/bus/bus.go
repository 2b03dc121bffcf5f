package bus

import (
	"encoding/json"
	"sync"
	"time"

	log "log/slog"

	"github.com/gorilla/websocket"
)

// Message is one event on the feed.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Client keeps a websocket connection to the event feed. Publishing
// never blocks the caller and a dead connection gets redialed with
// backoff.
type Client struct {
	url  string
	name string

	out  chan Message
	in   chan Message
	done chan struct{}
	once sync.Once
}

// Dial connects to the feed. The connection is maintained in the
// background from then on; only the first dial can fail.
func Dial(wsURL, name string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		url:  wsURL,
		name: name,
		out:  make(chan Message, 64),
		in:   make(chan Message, 64),
		done: make(chan struct{}),
	}

	log.Info("Connected to bus", "url", wsURL)

	go c.run(conn)
	return c, nil
}

// Publish queues an event for everyone on the feed. Congestion drops it.
func (c *Client) Publish(kind, content string) {
	msg := Message{From: c.name, To: "ALL", Kind: kind, Content: content}
	select {
	case c.out <- msg:
	default:
	}
}

// Messages delivers events addressed to this client or to ALL.
func (c *Client) Messages() <-chan Message { return c.in }

func (c *Client) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Client) run(conn *websocket.Conn) {
	backoff := time.Second

	for {
		if conn == nil {
			select {
			case <-c.done:
				return
			case <-time.After(backoff):
			}

			var err error
			conn, _, err = websocket.DefaultDialer.Dial(c.url, nil)
			if err != nil {
				log.Debug("Bus redial failed", "err", err)
				if backoff < 30*time.Second {
					backoff *= 2
				}
				conn = nil
				continue
			}

			log.Info("Connected to bus", "url", c.url)
			backoff = time.Second
		}

		readErr := make(chan error, 1)
		go c.readLoop(conn, readErr)

	connected:
		for {
			select {
			case <-c.done:
				conn.Close()
				return
			case msg := <-c.out:
				if err := write(conn, msg); err != nil {
					log.Debug("Bus write failed", "err", err)
					break connected
				}
			case err := <-readErr:
				log.Debug("Bus read failed", "err", err)
				break connected
			}
		}

		conn.Close()
		conn = nil
	}
}

func (c *Client) readLoop(conn *websocket.Conn, errCh chan<- error) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			errCh <- err
			return
		}

		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		if m.To != "" && m.To != "ALL" && m.To != c.name {
			continue
		}

		select {
		case c.in <- m:
		default:
		}
	}
}

func write(conn *websocket.Conn, m Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
