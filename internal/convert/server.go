package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"hanim/internal/layout"
	"hanim/internal/logger"
)

const socketEnv = "HANIM_SOCKET"

// DefaultSocketPath is where the conversion server listens unless told
// otherwise.
func DefaultSocketPath() string {
	if env := os.Getenv(socketEnv); env != "" {
		return env
	}
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, "hanim.sock")
	}
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, "hanim", "hanim.sock")
	}
	return filepath.Join(os.TempDir(), "hanim.sock")
}

func ensureSocketDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" || dir == string(filepath.Separator) {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Server converts newline-terminated lines received on a unix socket and
// answers each with the converted line.
type Server struct {
	listener net.Listener
	socket   string
	layout   *layout.Layout
	log      *slog.Logger

	conns sync.WaitGroup
	once  sync.Once
}

func Listen(path string, l *layout.Layout, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}
	if err := ensureSocketDir(path); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o660); err != nil && !errors.Is(err, os.ErrNotExist) {
		listener.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("chmod socket: %w", err)
	}
	return &Server{listener: listener, socket: path, layout: l, log: log}, nil
}

func (s *Server) Addr() string { return s.socket }

// Serve accepts connections until ctx is done or Close is called.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	s.log.Info("conversion server listening", "socket", s.socket)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.conns.Wait()
				return nil
			}
			return err
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			defer conn.Close()
			if err := s.handle(ctx, conn); err != nil {
				s.log.Warn("conversion connection failed", "error", err)
			}
		}()
	}
}

func (s *Server) Close() error {
	var err error
	s.once.Do(func() {
		err = s.listener.Close()
		_ = os.Remove(s.socket)
	})
	return err
}

func (s *Server) handle(ctx context.Context, conn net.Conn) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	writer := bufio.NewWriter(conn)
	for scanner.Scan() {
		if _, err := writer.WriteString(Line(s.layout, scanner.Text())); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Client talks to a running Server.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func Dial(ctx context.Context, path string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Convert sends one line and waits for its conversion.
func (c *Client) Convert(line string) (string, error) {
	if _, err := fmt.Fprintln(c.conn, line); err != nil {
		return "", err
	}
	response, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(response, "\n"), nil
}

func (c *Client) Close() error { return c.conn.Close() }

// RemoteStream converts r through the server at socket. When the server
// cannot be reached the lines are converted locally instead.
func RemoteStream(ctx context.Context, socket string, r io.Reader, w io.Writer, l *layout.Layout, log *slog.Logger) error {
	client, err := Dial(ctx, socket)
	if err != nil {
		if log != nil {
			log.Warn("falling back to local conversion", "socket", socket, "error", err)
		}
		return Stream(ctx, r, w, l)
	}
	defer client.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	writer := bufio.NewWriter(w)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		converted, err := client.Convert(scanner.Text())
		if err != nil {
			return fmt.Errorf("remote conversion: %w", err)
		}
		if _, err := writer.WriteString(converted); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writer.Flush()
}
