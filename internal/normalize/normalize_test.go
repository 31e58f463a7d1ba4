package normalize

import "testing"

func TestScheme(t *testing.T) {
	if got := Scheme("HTTPS"); got != "https" {
		t.Errorf("Scheme(HTTPS) = %q, want https", got)
	}
}

func TestHost(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Example.COM", "example.com"},
		{"example.com.", "example.com"},
		{"EXAMPLE.com.", "example.com"},
	}
	for _, tt := range tests {
		if got := Host(tt.in); got != tt.want {
			t.Errorf("Host(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMimeType(t *testing.T) {
	if got := MimeType("Image/PNG"); got != "image/png" {
		t.Errorf("MimeType(Image/PNG) = %q, want image/png", got)
	}
}

func TestPathUnchanged(t *testing.T) {
	if got := Path("/Foo/Bar"); got != "/Foo/Bar" {
		t.Errorf("Path must not change case, got %q", got)
	}
}
