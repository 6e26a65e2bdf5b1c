package session

import (
	"strings"
	"testing"
)

func TestRenderRequest(t *testing.T) {
	tests := []struct {
		name string
		path string
		host string
		max  int
		want string
	}{
		{
			name: "basic",
			path: "/",
			host: "example.com",
			max:  600,
			want: "GET / HTTP/1.1\nHost: example.com\n\n",
		},
		{
			name: "nested path",
			path: "/media/uploads/mbed_official/hello.txt",
			host: "os.mbed.com",
			max:  600,
			want: "GET /media/uploads/mbed_official/hello.txt HTTP/1.1\nHost: os.mbed.com\n\n",
		},
		{
			name: "truncated to capacity minus one",
			path: "/" + strings.Repeat("a", 100),
			host: "example.com",
			max:  32,
			want: "GET /" + strings.Repeat("a", 26),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(renderRequest(tt.path, tt.host, tt.max))
			if got != tt.want {
				t.Errorf("renderRequest() = %q, want %q", got, tt.want)
			}
			if tt.max > 0 && len(got) > tt.max-1 {
				t.Errorf("rendered request %d bytes exceeds %d", len(got), tt.max-1)
			}
		})
	}
}
