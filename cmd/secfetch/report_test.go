package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/secfetch/secfetch-go/pkg/session"
)

func TestPrintReport(t *testing.T) {
	cfg := Config{
		Host:    "example.com",
		markers: []string{"200 OK", "Hello world!"},
	}
	res := &session.Result{
		Markers:  map[string]bool{"200 OK": true, "Hello world!": false},
		Response: []byte("HTTP/1.1 200 OK\r\n\r\npartial"),
	}

	var buf bytes.Buffer
	printReport(&buf, cfg, res)
	out := buf.String()

	for _, want := range []string{
		"TLS connection to example.com established",
		"HTTPS: Received 26 chars from server",
		`HTTPS: Received "200 OK" status ... [OK]`,
		`HTTPS: Received "Hello world!" status ... [FAIL]`,
		"HTTPS: Received message:",
		"HTTP/1.1 200 OK\r\n\r\npartial",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Status lines come before the message body.
	if strings.Index(out, "status") > strings.Index(out, "Received message:") {
		t.Error("marker status lines should precede the message body")
	}
}
