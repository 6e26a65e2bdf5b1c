// Command secfetch performs a single verified HTTPS fetch and checks
// the response for expected markers.
//
// This command demonstrates the complete session driver:
//   - CLI argument parsing
//   - Configuration file support
//   - mDNS endpoint discovery
//   - Certificate trust evaluation reporting
//   - Protocol capture logging
//
// Usage:
//
//	secfetch [flags]
//
// Flags:
//
//	-host string        Server hostname (default "os.mbed.com")
//	-port int           Server port (default 443)
//	-path string        Request path (default "/media/uploads/mbed_official/hello.txt")
//	-ca string          PEM file with trust anchors (default: built-in root)
//	-auth string        Certificate auth mode: required, optional, none (default "required")
//	-markers string     Comma-separated response markers (default "200 OK,Hello world!")
//	-buffer int         Transfer buffer size in bytes (default 600)
//	-timeout duration   Overall fetch timeout (default 30s)
//	-config string      Configuration file path (YAML)
//	-discover           Discover the endpoint via mDNS instead of -host
//	-interactive        Start an interactive shell
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-capture string     Write protocol capture (CBOR) to this file
//
// Examples:
//
//	# Fetch the default hello resource
//	secfetch
//
//	# Fetch from a local server without certificate verification
//	secfetch -host 192.168.1.10 -port 8443 -auth none -path /
//
//	# Discover an HTTPS endpoint on the local network
//	secfetch -discover -auth optional
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "embed"

	"github.com/secfetch/secfetch-go/pkg/cert"
	"github.com/secfetch/secfetch-go/pkg/discovery"
	"github.com/secfetch/secfetch-go/pkg/log"
	"github.com/secfetch/secfetch-go/pkg/session"
	"github.com/secfetch/secfetch-go/pkg/transport"

	"github.com/secfetch/secfetch-go/cmd/secfetch/interactive"
)

//go:embed ca.pem
var builtinAnchors []byte

var cliConfig Config

func init() {
	flag.StringVar(&cliConfig.Host, "host", "", "Server hostname")
	flag.IntVar(&cliConfig.Port, "port", 0, "Server port")
	flag.StringVar(&cliConfig.Path, "path", "", "Request path")
	flag.StringVar(&cliConfig.CAFile, "ca", "", "PEM file with trust anchors (default: built-in root)")
	flag.StringVar(&cliConfig.Auth, "auth", "", "Certificate auth mode: required, optional, none")
	flag.StringVar(&cliConfig.MarkerList, "markers", "", "Comma-separated response markers")
	flag.IntVar(&cliConfig.BufferSize, "buffer", 0, "Transfer buffer size in bytes")
	flag.DurationVar(&cliConfig.Timeout, "timeout", 0, "Overall fetch timeout")
	flag.StringVar(&cliConfig.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.BoolVar(&cliConfig.Discover, "discover", false, "Discover the endpoint via mDNS instead of -host")
	flag.BoolVar(&cliConfig.Interactive, "interactive", false, "Start an interactive shell")
	flag.StringVar(&cliConfig.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&cliConfig.CaptureFile, "capture", "", "Write protocol capture (CBOR) to this file")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(cliConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "secfetch: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	capture, closeCapture, err := newCapture(cfg.CaptureFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "secfetch: %v\n", err)
		os.Exit(2)
	}
	defer closeCapture()

	if cfg.Interactive {
		client := interactive.New(interactive.Settings{
			Host:      cfg.Host,
			Port:      cfg.Port,
			Path:      cfg.Path,
			AuthMode:  cfg.authMode,
			AnchorPEM: cfg.anchorPEM,
			Markers:   cfg.markers,
			Timeout:   cfg.Timeout,
		}, capture, logger)
		if err := client.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "secfetch: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if cfg.Discover {
		if err := discoverEndpoint(ctx, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "secfetch: %v\n", err)
			os.Exit(1)
		}
	}

	if err := fetch(ctx, cfg, capture, logger); err != nil {
		fmt.Fprintf(os.Stderr, "secfetch: %v\n", err)
		os.Exit(1)
	}
}

// discoverEndpoint replaces the configured host and port with the
// first HTTPS endpoint seen on the local network.
func discoverEndpoint(ctx context.Context, cfg *Config) error {
	fmt.Println("Browsing for HTTPS endpoints...")

	browser := discovery.NewBrowser(discovery.BrowserConfig{})
	svc, err := browser.Find(ctx, "")
	if err != nil {
		return err
	}

	fmt.Printf("Discovered %q at %s:%d\n", svc.Instance, svc.Host, svc.Port)
	cfg.Host = strings.TrimSuffix(svc.Host, ".")
	cfg.Port = svc.Port
	return nil
}

// fetch runs one session and reports the outcome in the classic
// HelloHTTPS format.
func fetch(ctx context.Context, cfg Config, capture log.Logger, logger *slog.Logger) error {
	fmt.Printf("Connecting to %s:%d\n", cfg.Host, cfg.Port)
	fmt.Println("Starting the TLS handshake...")

	tr := transport.NewTCP(transport.TCPConfig{Logger: logger})
	s, err := session.New(session.Config{
		Host:       cfg.Host,
		Port:       cfg.Port,
		AuthMode:   cfg.authMode,
		AnchorPEM:  cfg.anchorPEM,
		Markers:    cfg.markers,
		BufferSize: cfg.BufferSize,
		Capture:    capture,
		Logger:     logger,
	}, tr)
	if err != nil {
		return err
	}

	res, err := s.Start(ctx, cfg.Path)
	if err != nil {
		return err
	}

	printReport(os.Stdout, cfg, res)

	if !res.AllFound() {
		return fmt.Errorf("missing expected response markers")
	}
	return nil
}

// printReport writes the fetch outcome in the classic HelloHTTPS
// format: certificate details, per-marker status lines, then the
// received message body.
func printReport(w io.Writer, cfg Config, res *session.Result) {
	fmt.Fprintf(w, "TLS connection to %s established\n", cfg.Host)
	fmt.Fprintln(w, "Server certificate:")
	fmt.Fprintln(w, cert.Describe(res.Verify.Peer()))
	if res.Verify.Trusted() {
		fmt.Fprintln(w, "Certificate verification passed")
	} else {
		fmt.Fprintf(w, "Certificate verification failed: %s\n", res.Verify.Flags)
	}

	fmt.Fprintf(w, "HTTPS: Received %d chars from server\n", len(res.Response))
	for _, marker := range cfg.markers {
		status := "[FAIL]"
		if res.Found(marker) {
			status = "[OK]"
		}
		fmt.Fprintf(w, "HTTPS: Received %q status ... %s\n", marker, status)
	}
	fmt.Fprintf(w, "HTTPS: Received message:\n\n")
	fmt.Fprintf(w, "%s\n", res.Response)
	if res.PeerClosed {
		fmt.Fprintln(w, "Server closed the connection")
	}
	if res.BufferFull {
		fmt.Fprintln(w, "Receive buffer filled before all markers were found")
	}
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

func newCapture(path string) (log.Logger, func(), error) {
	if path == "" {
		return log.NoopLogger{}, func() {}, nil
	}
	fl, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, err
	}
	return fl, func() { _ = fl.Close() }, nil
}
