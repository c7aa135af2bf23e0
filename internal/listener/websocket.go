package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

// WebSocketListener serves player sessions over websockets. Each inbound text
// frame is one line of input and each outbound line is one text frame.
type WebSocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebSocketListener(port uint16, path string, cm *ConnectionManager) *WebSocketListener {
	if path == "" {
		path = "/"
	}
	return &WebSocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (l *WebSocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.Handle(l.path, l.handler(connCtx, &wg))

	svr := &http.Server{
		Addr:              fmt.Sprintf(":%d", l.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return connCtx },
	}

	go func() {
		<-ctx.Done()
		cancelConns()
		// Hijacked connections are not tracked by Shutdown.
		svr.Close()
	}()

	slog.InfoContext(ctx, "listening for websockets", "port", l.port, "path", l.path)
	err := svr.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websockets on port %d: %w", l.port, err)
	}
	wg.Wait()
	return nil
}

// handler upgrades each request and runs a session on it under ctx.
func (l *WebSocketListener) handler(ctx context.Context, wg *sync.WaitGroup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.WarnContext(ctx, "upgrading websocket", "remote", r.RemoteAddr, "error", err)
			return
		}
		wg.Add(1)
		defer wg.Done()
		defer conn.Close()

		l.cm.AcceptConnection(ctx, newWSConn(conn))
	}
}

// wsConn presents a websocket as a newline delimited stream.
type wsConn struct {
	conn *websocket.Conn
	buf  bytes.Buffer

	mu sync.Mutex
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for c.buf.Len() == 0 {
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		if kind != websocket.TextMessage {
			continue
		}
		c.buf.Write(bytes.TrimRight(msg, "\r\n"))
		c.buf.WriteByte('\n')
	}
	return c.buf.Read(p)
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			return 0, err
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
