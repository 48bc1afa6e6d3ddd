package net

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	gonet "net"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a whole fetch: dial, handshake, request and response.
const DefaultTimeout = 30 * time.Second

// Response is a parsed HTTP/1.0 response. Header names are lowercased.
type Response struct {
	Status      int
	Explanation string
	Headers     map[string]string
	Body        string
}

// Client issues single-shot HTTP/1.0 GET requests over a fresh connection.
// The zero value is usable but has no deadline of its own; only the caller's
// context bounds a fetch. DefaultClient uses DefaultTimeout.
type Client struct {
	Dialer    *gonet.Dialer
	TLSConfig *tls.Config
	Timeout   time.Duration
	Logger    *zap.Logger
}

// DefaultClient is used by the package-level Fetch.
var DefaultClient = &Client{Timeout: DefaultTimeout}

// NewClient creates a Client with the given overall timeout and logger.
// A zero timeout disables the deadline; a nil logger discards output.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{Timeout: timeout, Logger: logger}
}

// Fetch retrieves rawURL with DefaultClient.
func Fetch(ctx context.Context, rawURL string) (*Response, error) {
	return DefaultClient.Fetch(ctx, rawURL)
}

// Fetch sends "GET path HTTP/1.0" with only a Host header and reads the
// response until the peer closes the connection. Anything but a 200 status
// is a *StatusError and no body is returned.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	logger := c.logger().With(zap.String("url", u.String()))

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	conn, err := c.connect(ctx, u)
	if err != nil {
		logger.Debug("connect failed", zap.Error(err))
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	req := "GET " + u.Path + " HTTP/1.0\r\n" + "Host: " + u.Host + "\r\n\r\n"
	if _, err := io.WriteString(conn, req); err != nil {
		return nil, c.connErr(ctx, "writing request", err)
	}
	logger.Debug("request sent", zap.String("path", u.Path))

	resp, err := readResponse(bufio.NewReader(conn))
	if err != nil {
		if errors.Is(err, ErrConnection) && ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ErrConnection, ctx.Err())
		}
		logger.Debug("response failed", zap.Error(err))
		return nil, err
	}
	logger.Debug("response received",
		zap.Int("status", resp.Status),
		zap.Int("headers", len(resp.Headers)),
		zap.Int("bytes", len(resp.Body)))
	return resp, nil
}

func (c *Client) connect(ctx context.Context, u *URL) (gonet.Conn, error) {
	dialer := c.Dialer
	if dialer == nil {
		dialer = &gonet.Dialer{}
	}
	addr := gonet.JoinHostPort(u.Host, strconv.Itoa(u.Port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %w", ErrConnection, addr, err)
	}
	if u.Scheme != "https" {
		return conn, nil
	}

	cfg := &tls.Config{}
	if c.TLSConfig != nil {
		cfg = c.TLSConfig.Clone()
	}
	cfg.ServerName = u.Host
	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: handshake with %s: %w", ErrTLS, u.Host, err)
	}
	return tlsConn, nil
}

func (c *Client) connErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnection, op, ctx.Err())
	}
	return fmt.Errorf("%w: %s: %w", ErrConnection, op, err)
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger.Named("fetch")
}

func readResponse(r *bufio.Reader) (*Response, error) {
	statusLine, err := readLine(r)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(statusLine, " ", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: status line %q", ErrMalformedResponse, statusLine)
	}
	resp := &Response{Headers: make(map[string]string)}
	if len(parts) == 3 {
		resp.Explanation = parts[2]
	}
	if parts[1] != "200" {
		return nil, &StatusError{Status: parts[1], Explanation: resp.Explanation}
	}
	resp.Status = 200

	for {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: header line %q", ErrMalformedResponse, line)
		}
		resp.Headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrConnection, err)
	}
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid utf-8", ErrEncoding)
	}
	resp.Body = string(body)
	return resp, nil
}

// readLine reads one CRLF-terminated line and strips the terminator.
// Running out of input before the terminator means the head was cut short.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: unexpected end of response head", ErrMalformedResponse)
		}
		return "", fmt.Errorf("%w: reading response head: %w", ErrConnection, err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !utf8.ValidString(line) {
		return "", fmt.Errorf("%w: response head is not valid utf-8", ErrEncoding)
	}
	return line, nil
}
