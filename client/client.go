package client

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/model"
)

const sendBuffer = 10

const pingInterval = 30 * time.Second

var ErrSendBufferFull = errors.New("client: send buffer full")

// Client is the websocket pipe to the world server. One goroutine reads
// and decodes events into Events, another drains the send channel onto
// the socket; publishers never touch the connection directly.
type Client struct {
	conn   *websocket.Conn
	Events chan model.Inbound
	Errors chan error
	send   chan any
	closed chan struct{}
}

func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:   conn,
		Events: make(chan model.Inbound, sendBuffer),
		Errors: make(chan error, 1),
		send:   make(chan any, sendBuffer),
		closed: make(chan struct{}),
	}
	go c.loopRead()
	go c.loopWrite()
	go c.loopPing()
	return c, nil
}

func (c *Client) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	c.conn.Close()
}

// PublishMove pushes a movement update; a full buffer is reported as an
// error so the caller can treat it as a transient publish failure.
func (c *Client) PublishMove(points []model.Point, dirs []model.Direction) error {
	msg := model.MoveMessage{Type: model.TypeMove, Points: points, Directions: dirs}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) PublishResponse(msg model.ResponseMessage) error {
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) loopRead() {
	log.Printf("client.loopRead STARTED")
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closed:
			default:
				log.Printf("client.loopRead err reading message from conn %v", err)
				select {
				case c.Errors <- err:
				default:
				}
			}
			break
		}
		in, ok := decode(data)
		if !ok {
			continue
		}
		select {
		case c.Events <- in:
		default:
			log.Warnf("client.loopRead dropping event, Events channel FULL")
		}
	}
	log.Printf("client.loopRead ENDED")
}

// decode turns one raw message into an Inbound event. Anything
// unparsable or of unknown type is dropped with a warning.
func decode(data []byte) (model.Inbound, bool) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		log.Warnf("client: cant decode message: %v", err)
		return model.Inbound{}, false
	}
	switch head.Type {
	case model.TypeMap:
		ev := &model.MapEvent{}
		if err := json.Unmarshal(data, ev); err != nil {
			log.Warnf("client: bad map event: %v", err)
			return model.Inbound{}, false
		}
		return model.Inbound{Map: ev}, true
	case model.TypeSessionOpened:
		ev := &model.SessionOpenedEvent{}
		if err := json.Unmarshal(data, ev); err != nil {
			log.Warnf("client: bad session_opened event: %v", err)
			return model.Inbound{}, false
		}
		return model.Inbound{SessionOpened: ev}, true
	case model.TypeSessionClosed:
		ev := &model.SessionClosedEvent{}
		if err := json.Unmarshal(data, ev); err != nil {
			log.Warnf("client: bad session_closed event: %v", err)
			return model.Inbound{}, false
		}
		return model.Inbound{SessionClosed: ev}, true
	case model.TypeHelpRequest:
		ev := &model.HelpRequestEvent{}
		if err := json.Unmarshal(data, ev); err != nil {
			log.Warnf("client: bad help_request event: %v", err)
			return model.Inbound{}, false
		}
		return model.Inbound{HelpRequest: ev}, true
	}
	log.Warnf("client: unknown message type %q", head.Type)
	return model.Inbound{}, false
}

// loopWrite only consumes. no worries about full buffer stuck
func (c *Client) loopWrite() {
	log.Printf("client.loopWrite STARTED")
	for {
		select {
		case <-c.closed:
			log.Printf("client.loopWrite ENDED")
			return
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Warnf("client.loopWrite cant write: %v", err)
				select {
				case <-c.closed:
				default:
					select {
					case c.Errors <- err:
					default:
					}
				}
				return
			}
		}
	}
}

// Ping keeps the connection marked alive; some world servers drop quiet
// clients. WriteControl is safe alongside the write loop.
func (c *Client) Ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
}

func (c *Client) loopPing() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.closed:
			return
		case <-ticker.C:
			if err := c.Ping(); err != nil {
				log.Warnf("client.loopPing cant ping: %v", err)
				return
			}
		}
	}
}
