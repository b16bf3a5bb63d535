package speedtest

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	defaultDialTimeout = 10 * time.Second
	uploadContentType  = "application/octet-stream"
)

// RequestSpec describes a single HTTP exchange to be timed.
type RequestSpec struct {
	Method   string
	URL      string
	BodySize int64 // POST body size in bytes; content is constant zero bytes
}

// Response carries the outcome of a timed exchange. Duration spans from just
// before dispatch until the response body has been fully drained, so it
// reflects the complete transfer rather than header arrival.
type Response struct {
	StatusCode int
	Header     http.Header
	BodySize   int64
	Duration   time.Duration
}

// Transport sends a request and reports wall-clock timing. Implementations
// must drain the response body before recording the stop time.
type Transport interface {
	Send(spec RequestSpec) (*Response, error)
}

// ClientOptions selects the address family and the overall per-request
// timeout for the real HTTP transport.
type ClientOptions struct {
	IPv4    bool
	IPv6    bool
	Timeout time.Duration // zero means no timeout
}

type httpTransport struct {
	client *http.Client
}

// NewClient builds a Transport over net/http. IPv4/IPv6 selection works by
// locking the dialer to tcp4 or tcp6.
// cf. https://go.googlesource.com/go/+/refs/tags/go1.22.1/src/net/http/transport.go#43
func NewClient(opts ClientOptions) Transport {
	protocol := "tcp"
	if opts.IPv4 {
		protocol = "tcp4"
	}
	if opts.IPv6 {
		protocol = "tcp6"
	}

	return &httpTransport{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: func(ctx context.Context, _, addr string) (net.Conn, error) {
					return (&net.Dialer{
						Timeout:   defaultDialTimeout,
						KeepAlive: 30 * time.Second,
					}).DialContext(ctx, protocol, addr)
				},
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

func (t *httpTransport) Send(spec RequestSpec) (*Response, error) {
	var body io.Reader
	if spec.Method == http.MethodPost {
		body = bytes.NewReader(make([]byte, spec.BodySize))
	}

	req, err := http.NewRequest(spec.Method, spec.URL, body)
	if err != nil {
		return nil, &TransportError{Op: spec.Method, URL: spec.URL, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", uploadContentType)
	}

	start := time.Now()

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: spec.Method, URL: spec.URL, Err: err}
	}
	drained, err := drainResponse(resp)
	if err != nil {
		return nil, &TransportError{Op: spec.Method, URL: spec.URL, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		BodySize:   drained,
		Duration:   time.Since(start),
	}, nil
}

func drainResponse(resp *http.Response) (int64, error) {
	drained, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return 0, err
	}
	if err := resp.Body.Close(); err != nil {
		return 0, err
	}

	return drained, nil
}
