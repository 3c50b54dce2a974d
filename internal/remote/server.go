package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/weatherpanel/internal/display"
	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/logging"
	"github.com/muurk/weatherpanel/internal/metrics"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024

	// Frames buffered per client before old ones are dropped
	feedSize = 8
)

// Config holds the remote panel configuration
type Config struct {
	Addr      string
	LongPress time.Duration // Long-press threshold of the device debouncer
}

// Server serves panel frames and accepts button presses
type Server struct {
	config   Config
	panel    *display.Panel
	button1  *input.SimLine
	button2  *input.SimLine
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener

	wg      sync.WaitGroup
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a remote panel server. m may be nil, in which case /metrics
// is not served.
func New(config Config, panel *display.Panel, button1, button2 *input.SimLine, m *metrics.Metrics) *Server {
	if config.LongPress <= 0 {
		config.LongPress = input.DefaultLongPress
	}
	return &Server{
		config:  config,
		panel:   panel,
		button1: button1,
		button2: button2,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP handler with all endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// Listen binds the configured address. Port reports the bound port
// afterwards, which matters when Addr ends in ":0".
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener
	return nil
}

// Port returns the bound TCP port, or 0 before Listen
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Serve runs the server until ctx is canceled. Listen is called first if
// needed.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logging.Info("Remote panel listening", zap.String("addr", s.listener.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote panel server: %w", err)
	}
}

// Shutdown stops accepting connections and closes all websocket clients
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down remote panel...")

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// Hijacked websocket connections are not closed by http.Server.
	s.mu.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	return err
}

// GetActiveConnections returns the number of connected websocket clients
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()

	s.track(conn, true)
	defer s.track(conn, false)

	s.serveClient(conn, r.RemoteAddr)
}

func (s *Server) track(conn *websocket.Conn, add bool) {
	s.mu.Lock()
	if add {
		s.clients[conn] = struct{}{}
	} else {
		delete(s.clients, conn)
	}
	n := len(s.clients)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RemoteClients.Set(float64(n))
	}
}

// serveClient runs the read loop on the calling goroutine and the write
// loop on another. gorilla/websocket allows one concurrent reader and one
// concurrent writer.
func (s *Server) serveClient(conn *websocket.Conn, remoteAddr string) {
	logging.LogConnection(remoteAddr, "websocket_connected")
	defer logging.LogConnection(remoteAddr, "websocket_closed")

	feed := display.NewFeed(feedSize)
	unsubscribe := s.panel.Watch(feed.Push)
	defer unsubscribe()

	replies := make(chan any, 4)
	stop := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		s.writeLoop(conn, remoteAddr, feed, replies, stop)
	}()

	s.readLoop(conn, remoteAddr, replies)

	close(stop)
	<-writerDone
	_ = conn.Close()
}

func (s *Server) readLoop(conn *websocket.Conn, remoteAddr string, replies chan<- any) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(remoteAddr, "received", data)

		msg, err := ParsePress(data)
		if err != nil {
			select {
			case replies <- ErrorMessage{Type: TypeError, Message: err.Error()}:
			default:
			}
			continue
		}
		s.press(msg.Button)
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, remoteAddr string, feed *display.Feed, replies <-chan any, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		var msg any
		select {
		case <-stop:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case f := <-feed.C():
			msg = NewFrameMessage(f)
		case reply := <-replies:
			msg = reply
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
			continue
		}

		data, err := json.Marshal(msg)
		if err != nil {
			logging.Error("Failed to marshal message", zap.Error(err))
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logging.Info("Write failed, dropping client",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			// Unblock the read loop
			_ = conn.Close()
			return
		}
		logging.LogWebSocketMessage(remoteAddr, "sent", data)
	}
}

func (s *Server) press(button string) {
	switch button {
	case Button1:
		s.button1.Tap(input.DefaultTap)
	case Button2:
		s.button2.Tap(input.DefaultTap)
	case ButtonBoth:
		input.TapBoth(s.button1, s.button2, s.config.LongPress)
	}
}
