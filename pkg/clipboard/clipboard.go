// Package clipboard reads and writes the Android device clipboard exposed
// by the Droidrun Portal app. Two transports exist: an adb content-provider
// call and an HTTP call to the portal's socket server reached through a
// port forward. The Client picks one per its configured method; "auto"
// probes the HTTP side once and falls back to adb.
package clipboard

import (
	"context"
	"fmt"

	"droidclip/pkg/adb"
	"droidclip/pkg/config"
	"droidclip/pkg/logger"
)

// Method selects how the device clipboard is reached.
type Method string

const (
	MethodAuto Method = "auto"
	MethodHTTP Method = "http"
	MethodADB  Method = "adb"
)

// ParseMethod validates a method string coming from a flag or config file.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodAuto, MethodHTTP, MethodADB:
		return Method(s), nil
	default:
		return "", fmt.Errorf("invalid method %q (expected auto, http, or adb)", s)
	}
}

// providerResponse is the payload shape both transports return: the
// content provider embeds it after a "result=" marker, the socket server
// sends it as the response body.
type providerResponse struct {
	Status string `json:"status"`
	Data   string `json:"data"`
}

const statusSuccess = "success"

// Transport performs a single clipboard operation. Get reports ok=false
// only for genuine absence of content; every process, network, or decode
// failure uses the error channel.
type Transport interface {
	Name() string
	Get(ctx context.Context) (text string, ok bool, err error)
	Set(ctx context.Context, text string) error
}

type availability int

const (
	availabilityUnknown availability = iota
	availabilityUp
	availabilityDown
)

// Options configures a Client. Zero-value fields fall back to the
// package defaults from pkg/config.
type Options struct {
	Method    Method
	Port      int
	Authority string
	Bridge    *adb.Manager
}

// Client is the clipboard facade. It is built once per invocation and is
// not safe for concurrent use; the availability probe result is memoized
// for the Client's lifetime.
type Client struct {
	method    Method
	http      Transport
	shell     Transport
	probe     func(ctx context.Context) bool
	httpState availability
}

func New(opts Options) *Client {
	if opts.Method == "" {
		opts.Method = MethodAuto
	}
	if opts.Port == 0 {
		opts.Port = config.DefaultPort
	}
	if opts.Authority == "" {
		opts.Authority = config.DefaultAuthority
	}
	bridge := opts.Bridge
	if bridge == nil {
		bridge = adb.NewManager("", "")
	}

	ht := newHTTPTransport(opts.Port)
	c := &Client{
		method: opts.Method,
		http:   ht,
		shell:  newShellTransport(bridge, opts.Authority),
	}
	c.probe = func(ctx context.Context) bool {
		// A failed forward is tolerated: the port may already be
		// forwarded, or the server reachable some other way.
		if err := bridge.Forward(ctx, opts.Port); err != nil {
			logger.Debug().Err(err).Int("port", opts.Port).Msg("port forward failed, probing anyway")
		}
		if err := ht.Ping(ctx); err != nil {
			logger.Debug().Err(err).Msg("socket server unreachable, falling back to adb transport")
			return false
		}
		return true
	}
	return c
}

// Get returns the device clipboard content. ok is false when the device
// reports no content; an empty string with ok=true is a real value.
func (c *Client) Get(ctx context.Context) (string, bool, error) {
	return c.transport(ctx).Get(ctx)
}

// Set places text on the device clipboard. The text round-trips
// code-point for code-point, including quotes, backslashes, newlines,
// and emoji.
func (c *Client) Set(ctx context.Context, text string) error {
	return c.transport(ctx).Set(ctx, text)
}

// ActiveTransport reports which transport a call would use right now,
// resolving (and memoizing) availability in auto mode.
func (c *Client) ActiveTransport(ctx context.Context) string {
	return c.transport(ctx).Name()
}

func (c *Client) transport(ctx context.Context) Transport {
	if c.method == MethodHTTP || (c.method == MethodAuto && c.httpAvailable(ctx)) {
		return c.http
	}
	return c.shell
}

func (c *Client) httpAvailable(ctx context.Context) bool {
	switch c.httpState {
	case availabilityUp:
		return true
	case availabilityDown:
		return false
	}
	if c.probe(ctx) {
		c.httpState = availabilityUp
		return true
	}
	c.httpState = availabilityDown
	return false
}
