package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

// StreamEvent is one target lifecycle push from the browser: a tab was
// created, destroyed, or changed its title/URL.
type StreamEvent struct {
	Method   string
	TargetID string
}

// Stream follows the browser-level websocket and surfaces target
// lifecycle events, letting the poller refresh the moment the tab set
// changes instead of waiting out its interval. A dropped stream is not
// fatal; polling continues without it.
type Stream struct {
	conn   *websocket.Conn
	events chan StreamEvent

	closeOnce sync.Once
	done      chan struct{}
}

// discoverRequest enables Target.targetCreated/Destroyed/InfoChanged
// notifications on the browser connection.
const discoverRequest = `{"id":1,"method":"Target.setDiscoverTargets","params":{"discover":true}}`

// AttachStream dials the browser's websocket debugger URL, obtained
// from the version handshake, and turns on target discovery.
func AttachStream(ctx context.Context, client *Client) (*Stream, error) {
	ver, err := client.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("stream handshake: %w", err)
	}
	if ver.WebSocketDebuggerURL == "" {
		return nil, fmt.Errorf("endpoint %s offers no websocket debugger URL", client.Endpoint())
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ver.WebSocketDebuggerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", ver.WebSocketDebuggerURL, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(discoverRequest)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling target discovery: %w", err)
	}
	s := &Stream{
		conn:   conn,
		events: make(chan StreamEvent, 16),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// Events returns the lifecycle event channel. It is closed when the
// stream ends, whether by Close or by the connection dropping.
func (s *Stream) Events() <-chan StreamEvent { return s.events }

// Close tears down the websocket. Safe to call more than once.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

func (s *Stream) readLoop() {
	defer close(s.events)
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.Close()
			}
			return
		}
		method := gjson.GetBytes(payload, "method").String()
		var targetID string
		switch method {
		case "Target.targetCreated", "Target.targetInfoChanged":
			info := gjson.GetBytes(payload, "params.targetInfo")
			if info.Get("type").String() != "page" {
				continue
			}
			targetID = info.Get("targetId").String()
		case "Target.targetDestroyed":
			targetID = gjson.GetBytes(payload, "params.targetId").String()
		default:
			// command replies and unrelated domains
			continue
		}
		evt := StreamEvent{Method: method, TargetID: targetID}
		select {
		case s.events <- evt:
		default:
			// channel full: the pending refresh already covers this change
		}
	}
}
