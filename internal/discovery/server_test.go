package discovery

import (
	"testing"
)

func TestServer_String(t *testing.T) {
	srv := &Server{
		Instance: "picker on desk",
		Hostname: "desk.local.",
		IP:       "192.168.1.10",
		Port:     7878,
	}

	want := "picker on desk (desk.local.) at 192.168.1.10:7878"
	if got := srv.String(); got != want {
		t.Errorf("String() = %v, want %v", got, want)
	}
}

func TestServer_URL(t *testing.T) {
	tests := []struct {
		name string
		srv  *Server
		want string
	}{
		{
			name: "defaults",
			srv:  &Server{IP: "192.168.1.10", Port: 7878},
			want: "ws://192.168.1.10:7878/ws",
		},
		{
			name: "custom path and tls",
			srv: &Server{IP: "10.0.0.1", Port: 443, Metadata: map[string]string{
				"path": "/picker",
				"tls":  "true",
			}},
			want: "wss://10.0.0.1:443/picker",
		},
		{
			name: "ipv6",
			srv:  &Server{IP: "fe80::1", Port: 7878},
			want: "ws://[fe80::1]:7878/ws",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.srv.URL(); got != tt.want {
				t.Errorf("URL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServer_GetMetadata(t *testing.T) {
	srv := &Server{Metadata: map[string]string{"version": "v1.0.0"}}

	if got := srv.GetMetadata("version"); got != "v1.0.0" {
		t.Errorf("GetMetadata(version) = %v, want v1.0.0", got)
	}
	if got := srv.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %v, want empty", got)
	}

	empty := &Server{}
	if got := empty.GetMetadata("version"); got != "" {
		t.Errorf("GetMetadata on nil map = %v, want empty", got)
	}
}
