// Package interactive provides the interactive shell for secfetch.
package interactive

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/secfetch/secfetch-go/pkg/cert"
	"github.com/secfetch/secfetch-go/pkg/discovery"
	"github.com/secfetch/secfetch-go/pkg/log"
	"github.com/secfetch/secfetch-go/pkg/session"
	"github.com/secfetch/secfetch-go/pkg/transport"
)

// Settings are the mutable fetch parameters the shell operates on.
type Settings struct {
	Host      string
	Port      int
	Path      string
	AuthMode  session.AuthMode
	AnchorPEM []byte
	Markers   []string
	Timeout   time.Duration
}

// Client handles interactive mode for secfetch.
type Client struct {
	settings Settings
	capture  log.Logger
	logger   *slog.Logger
	rl       *readline.Instance

	lastVerify *cert.Report
}

// New creates a new interactive client.
func New(settings Settings, capture log.Logger, logger *slog.Logger) *Client {
	return &Client{
		settings: settings,
		capture:  capture,
		logger:   logger,
	}
}

// Run reads and executes commands until EOF or exit.
func (c *Client) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "secfetch> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	c.rl = rl
	defer rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "fetch", "get", "f":
			c.cmdFetch(ctx, args)

		case "host":
			c.cmdHost(args)

		case "auth":
			c.cmdAuth(args)

		case "markers":
			c.cmdMarkers(args)

		case "cert":
			c.cmdCert()

		case "discover", "d":
			c.cmdDiscover(ctx)

		case "exit", "quit", "q":
			return nil

		default:
			fmt.Fprintf(rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (c *Client) printHelp() {
	out := c.rl.Stdout()
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  fetch [path]          Run one fetch (alias: get, f)")
	fmt.Fprintln(out, "  host <name> [port]    Set the target host")
	fmt.Fprintln(out, "  auth <mode>           Set auth mode: required, optional, none")
	fmt.Fprintln(out, "  markers [m1,m2,...]   Show or set response markers")
	fmt.Fprintln(out, "  cert                  Show the last peer certificate report")
	fmt.Fprintln(out, "  discover              Browse mDNS for HTTPS endpoints (alias: d)")
	fmt.Fprintln(out, "  help                  Show this help (alias: ?)")
	fmt.Fprintln(out, "  exit                  Leave the shell (alias: quit, q)")
}

func (c *Client) cmdFetch(ctx context.Context, args []string) {
	out := c.rl.Stdout()

	path := c.settings.Path
	if len(args) > 0 {
		path = args[0]
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	fmt.Fprintf(out, "Fetching https://%s:%d%s\n", c.settings.Host, c.settings.Port, path)

	tr := transport.NewTCP(transport.TCPConfig{Logger: c.logger})
	s, err := session.New(session.Config{
		Host:      c.settings.Host,
		Port:      c.settings.Port,
		AuthMode:  c.settings.AuthMode,
		AnchorPEM: c.settings.AnchorPEM,
		Markers:   c.settings.Markers,
		Capture:   c.capture,
		Logger:    c.logger,
	}, tr)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	res, err := s.Start(fetchCtx, path)
	if err != nil {
		fmt.Fprintf(out, "Fetch failed: %v\n", err)
		return
	}
	c.lastVerify = &res.Verify

	fmt.Fprintf(out, "Received %d chars\n", len(res.Response))
	for marker, found := range res.Markers {
		status := "[FAIL]"
		if found {
			status = "[OK]"
		}
		fmt.Fprintf(out, "  %q ... %s\n", marker, status)
	}
	if res.Verify.Trusted() {
		fmt.Fprintln(out, "Certificate verification passed")
	} else {
		fmt.Fprintf(out, "Certificate verification failed: %s\n", res.Verify.Flags)
	}
}

func (c *Client) cmdHost(args []string) {
	out := c.rl.Stdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "Host: %s:%d\n", c.settings.Host, c.settings.Port)
		return
	}
	c.settings.Host = args[0]
	if len(args) > 1 {
		port, err := strconv.Atoi(args[1])
		if err != nil || port <= 0 || port > 65535 {
			fmt.Fprintf(out, "Invalid port: %s\n", args[1])
			return
		}
		c.settings.Port = port
	}
	fmt.Fprintf(out, "Host set to %s:%d\n", c.settings.Host, c.settings.Port)
}

func (c *Client) cmdAuth(args []string) {
	out := c.rl.Stdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "Auth mode: %s\n", c.settings.AuthMode)
		return
	}
	switch args[0] {
	case "required":
		c.settings.AuthMode = session.AuthModeRequired
	case "optional":
		c.settings.AuthMode = session.AuthModeOptional
	case "none":
		c.settings.AuthMode = session.AuthModeNone
	default:
		fmt.Fprintf(out, "Unknown auth mode: %s\n", args[0])
		return
	}
	fmt.Fprintf(out, "Auth mode set to %s\n", c.settings.AuthMode)
}

func (c *Client) cmdMarkers(args []string) {
	out := c.rl.Stdout()
	if len(args) == 0 {
		markers := c.settings.Markers
		if len(markers) == 0 {
			markers = session.DefaultMarkers()
		}
		fmt.Fprintf(out, "Markers: %s\n", strings.Join(markers, ", "))
		return
	}
	var markers []string
	for _, m := range strings.Split(strings.Join(args, " "), ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			markers = append(markers, m)
		}
	}
	c.settings.Markers = markers
	fmt.Fprintf(out, "Markers set to: %s\n", strings.Join(markers, ", "))
}

func (c *Client) cmdCert() {
	out := c.rl.Stdout()
	if c.lastVerify == nil {
		fmt.Fprintln(out, "No fetch performed yet")
		return
	}
	fmt.Fprintln(out, "Peer certificate:")
	fmt.Fprintln(out, cert.Describe(c.lastVerify.Peer()))
	fmt.Fprintf(out, "Verification: %s\n", c.lastVerify.Flags)
}

func (c *Client) cmdDiscover(ctx context.Context) {
	out := c.rl.Stdout()
	fmt.Fprintln(out, "Browsing for HTTPS endpoints (5s)...")

	browseCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	browser := discovery.NewBrowser(discovery.BrowserConfig{})
	results, err := browser.Browse(browseCtx)
	if err != nil {
		fmt.Fprintf(out, "Browse failed: %v\n", err)
		return
	}

	count := 0
	for svc := range results {
		count++
		fmt.Fprintf(out, "  %s at %s:%d %v\n", svc.Instance, svc.Host, svc.Port, svc.Addresses)
	}
	if count == 0 {
		fmt.Fprintln(out, "No endpoints found")
	}
}
