package decoder

import (
	"strings"
	"testing"
)

func TestJWT(t *testing.T) {
	t.Parallel()

	raw := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.signature"

	got, err := JWT(raw)
	if err != nil {
		t.Fatalf("JWT(%q) error = %v", raw, err)
	}

	want := raw + Arrow + `header: {"alg":"HS256"} | payload: {"sub":"1234567890"}`
	if got != want {
		t.Errorf("JWT(%q) = %q, want %q", raw, got, want)
	}
	if !strings.HasPrefix(got, raw) {
		t.Errorf("JWT value should start with the untouched token")
	}
}

func TestJWTDiscards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "two segments", raw: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0"},
		{name: "four segments", raw: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.a.b"},
		{name: "header not base64", raw: "eyJ!!!.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"},
		{name: "payload not text", raw: "eyJhbGciOiJIUzI1NiJ9.__8.sig"},
		{name: "impossible length", raw: "eyJhb.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got, err := JWT(tt.raw); err == nil {
				t.Errorf("JWT(%q) = %q, want error", tt.raw, got)
			}
		})
	}
}

func TestBase64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "aligned",
			raw:  "c2VjcmV0X3Bhc3N3b3JkX3ZhbHVl",
			want: "c2VjcmV0X3Bhc3N3b3JkX3ZhbHVl" + Arrow + "secret_password_value",
		},
		{
			name: "phrase",
			raw:  "aGVsbG8gd29ybGQgZnJvbSBsaXRl",
			want: "aGVsbG8gd29ybGQgZnJvbSBsaXRl" + Arrow + "hello world from lite",
		},
		{
			name: "padding stripped by the matcher",
			raw:  "dGhpcyBpcyBhIHRlc3Q",
			want: "dGhpcyBpcyBhIHRlc3Q" + Arrow + "this is a test",
		},
		{
			name:    "binary payload",
			raw:     "//////////////////////8",
			wantErr: true,
		},
		{
			name:    "impossible length",
			raw:     "abcdefghijklmnopqrstu",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Base64(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Base64(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Base64(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Base64(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	if !Known(NameIdentity) || !Known(NameBase64) || !Known(NameJWT) {
		t.Fatal("built-in decoders must be registered")
	}
	if Known("rot13") {
		t.Error("Known(rot13) = true, want false")
	}

	got, err := Lookup("rot13")("AKIA1234567890ABCD12")
	if err != nil || got != "AKIA1234567890ABCD12" {
		t.Errorf("unknown decoder should behave as identity, got %q, %v", got, err)
	}
	if _, err := Lookup(NameJWT)("not.a.jwt!"); err == nil {
		t.Error("Lookup(jwt) kept an invalid JWT")
	}
}

