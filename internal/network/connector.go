// internal/network/connector.go
package network

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"
)

// maxBody caps one feed response.
const maxBody = 4 << 20

// Session is an established network path used for the cycle's fetches.
type Session interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Connector establishes the cycle's network path.
// Every failure is *ConnectivityError.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Config is minimal connect config.
type Config struct {
	ProbeURL string        // host that must be reachable before fetching
	Timeout  time.Duration // dial, handshake and per-request timeout
	TLS      *tls.Config   // nil uses system roots
}

// HTTPConnector proves reachability of the feed host (DNS, TCP and TLS
// handshake) and hands out an HTTP session.
type HTTPConnector struct {
	cfg    Config
	dialer *net.Dialer
	tls    *tls.Config
}

// NewHTTPConnector creates a connector. It does no IO.
func NewHTTPConnector(cfg Config) *HTTPConnector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPConnector{
		cfg:    cfg,
		dialer: &net.Dialer{Timeout: cfg.Timeout},
		tls:    cfg.TLS,
	}
}

// Connect performs exactly one reachability attempt.
func (c *HTTPConnector) Connect(ctx context.Context) (Session, error) {
	u, err := url.Parse(c.cfg.ProbeURL)
	if err != nil {
		return nil, &ConnectivityError{Kind: KindConfig, Endpoint: c.cfg.ProbeURL, Err: err}
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &ConnectivityError{
			Kind:     KindConfig,
			Endpoint: c.cfg.ProbeURL,
			Err:      errors.New("probe url must be absolute http(s)"),
		}
	}

	addr := u.Host
	if u.Port() == "" {
		port := "443"
		if u.Scheme == "http" {
			port = "80"
		}
		addr = net.JoinHostPort(u.Hostname(), port)
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectivityError{Kind: classifyDial(err), Endpoint: addr, Err: err}
	}
	defer conn.Close()

	if u.Scheme == "https" {
		cfg := c.tls.Clone()
		if cfg == nil {
			cfg = &tls.Config{}
		}
		if cfg.ServerName == "" {
			cfg.ServerName = u.Hostname()
		}

		hctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		tc := tls.Client(conn, cfg)
		if err := tc.HandshakeContext(hctx); err != nil {
			kind := KindHandshake
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				kind = KindTimeout
			}
			return nil, &ConnectivityError{Kind: kind, Endpoint: addr, Err: err}
		}
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = c.tls.Clone()

	return &httpSession{
		client: &http.Client{Timeout: c.cfg.Timeout, Transport: tr},
	}, nil
}

func classifyDial(err error) Kind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return KindRefused
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return KindUnreachable
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindOther
}

// ---- session ----

type httpSession struct {
	client *http.Client
}

// Get performs one GET. Non-2xx responses are errors.
func (s *httpSession) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", rawURL, err)
	}
	return body, nil
}
