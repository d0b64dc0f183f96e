package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name        string
		curlCmd     string
		wantHeaders map[string]string
		wantCookie  string
		wantErr     bool
	}{
		{
			name:    "single header with single quotes",
			curlCmd: `curl -H 'Authorization: Bearer token123' https://api.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token123",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "single header with double quotes",
			curlCmd: `curl -H "Authorization: Bearer token123" https://api.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token123",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "multiple headers",
			curlCmd: `curl -H 'Content-Type: application/json' -H 'Authorization: Bearer token' https://api.example.com`,
			wantHeaders: map[string]string{
				"Content-Type":  "application/json",
				"Authorization": "Bearer token",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:        "cookie in -b flag with single quotes",
			curlCmd:     `curl -b 'session=abc123' https://api.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123",
			wantErr:     false,
		},
		{
			name:        "cookie in -b flag with double quotes",
			curlCmd:     `curl -b "session=abc123" https://api.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123",
			wantErr:     false,
		},
		{
			name:        "cookie in -H header",
			curlCmd:     `curl -H 'Cookie: session=abc123; token=xyz' https://api.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123; token=xyz",
			wantErr:     false,
		},
		{
			name:    "cookie header is excluded from regular headers",
			curlCmd: `curl -H 'Cookie: session=abc123' -H 'Authorization: Bearer token' https://api.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
			},
			wantCookie: "session=abc123",
			wantErr:    false,
		},
		{
			name: "multiline curl with backslashes",
			curlCmd: `curl -H 'Authorization: Bearer token' \
-H 'Content-Type: application/json' \
https://api.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
				"Content-Type":  "application/json",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "headers with spaces around colon",
			curlCmd: `curl -H 'Authorization : Bearer token' https://api.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:        "-b cookie takes precedence over -H cookie",
			curlCmd:     `curl -H 'Cookie: old=value' -b 'new=value' https://api.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "new=value",
			wantErr:     false,
		},
		{
			name:    "no headers or cookies",
			curlCmd: `curl https://api.example.com`,
			wantErr: true,
		},
		{
			name:    "empty command",
			curlCmd: "",
			wantErr: true,
		},
		{
			name: "complex real-world example",
			curlCmd: `curl 'https://www.deezer.com/ajax/gw-light.php?method=deezer.userMenu' \
  -H 'accept: */*' \
  -H 'accept-language: en-US,en;q=0.9' \
  -H 'content-type: text/plain;charset=UTF-8' \
  -H 'cookie: dzr_uniq_id=xyz; sid=fr0123' \
  --data-raw '{}'`,
			wantHeaders: map[string]string{
				"accept":          "*/*",
				"accept-language": "en-US,en;q=0.9",
				"content-type":    "text/plain;charset=UTF-8",
			},
			wantCookie: "dzr_uniq_id=xyz; sid=fr0123",
			wantErr:    false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCurlCommand(tc.curlCmd)

			if (err != nil) != tc.wantErr {
				t.Errorf("ParseCurlCommand() error = %v, wantErr %v", err, tc.wantErr)
				return
			}

			if tc.wantErr {
				return
			}

			if result == nil {
				t.Fatal("ParseCurlCommand() returned nil result")
			}

			if len(result.Headers) != len(tc.wantHeaders) {
				t.Errorf("ParseCurlCommand() headers count = %v, want %v", len(result.Headers), len(tc.wantHeaders))
			}

			for key, want := range tc.wantHeaders {
				if got := result.Headers[key]; got != want {
					t.Errorf("ParseCurlCommand() header[%s] = %v, want %v", key, got, want)
				}
			}

			if result.Cookie != tc.wantCookie {
				t.Errorf("ParseCurlCommand() cookie = %v, want %v", result.Cookie, tc.wantCookie)
			}
		})
	}
}

func TestParseCurlFile(t *testing.T) {
	t.Run("successful file parse", func(t *testing.T) {
		tmpDir := t.TempDir()
		curlFile := filepath.Join(tmpDir, "curl.sh")

		curlCmd := `curl -H 'Authorization: Bearer token123' -H 'Content-Type: application/json' https://api.example.com`
		if err := os.WriteFile(curlFile, []byte(curlCmd), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		result, err := ParseCurlFile(curlFile)
		if err != nil {
			t.Fatalf("ParseCurlFile() error = %v", err)
		}

		if len(result.Headers) != 2 {
			t.Errorf("ParseCurlFile() headers count = %v, want 2", len(result.Headers))
		}

		if result.Headers["Authorization"] != "Bearer token123" {
			t.Errorf("ParseCurlFile() Authorization = %v, want %v", result.Headers["Authorization"], "Bearer token123")
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		_, err := ParseCurlFile("/nonexistent/file.sh")
		if err == nil {
			t.Error("ParseCurlFile() expected error for nonexistent file")
		}
	})

	t.Run("file with no valid headers", func(t *testing.T) {
		tmpDir := t.TempDir()
		curlFile := filepath.Join(tmpDir, "invalid.sh")

		if err := os.WriteFile(curlFile, []byte("curl https://example.com"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		_, err := ParseCurlFile(curlFile)
		if err == nil {
			t.Error("ParseCurlFile() expected error for file with no headers")
		}
	})
}

func TestCurlHeaders_SID(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{name: "sid only", cookie: "sid=fr1234abcd", want: "fr1234abcd"},
		{name: "sid among other cookies", cookie: "dzr_uniq_id=abc; sid=fr99; arl=zzz", want: "fr99"},
		{name: "spaces around pairs", cookie: "  a=1 ;  sid = fr77 ", want: "fr77"},
		{name: "no sid", cookie: "dzr_uniq_id=abc; arl=zzz", want: ""},
		{name: "empty cookie", cookie: "", want: ""},
		{name: "prefix is not a match", cookie: "xsid=nope; sid=yes", want: "yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &CurlHeaders{Cookie: tt.cookie}
			if got := h.SID(); got != tt.want {
				t.Errorf("SID() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("from a captured deezer request", func(t *testing.T) {
		curlCmd := `curl 'https://www.deezer.com/ajax/gw-light.php?method=deezer.getUserData' \
  -H 'accept: */*' \
  -b 'dzr_uniq_id=dzr_uniq_id_fr1; sid=fr4b2c0ffee; comeback=1'`

		h, err := ParseCurlCommand(curlCmd)
		if err != nil {
			t.Fatalf("ParseCurlCommand() error = %v", err)
		}
		if got := h.SID(); got != "fr4b2c0ffee" {
			t.Errorf("SID() = %q, want %q", got, "fr4b2c0ffee")
		}
	})
}

func TestParseCurlCommand_Quoting(t *testing.T) {
	t.Run("long flag names", func(t *testing.T) {
		h, err := ParseCurlCommand(`curl https://www.deezer.com/ --header 'accept: */*' --cookie 'sid=fr42'`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h.Headers["accept"] != "*/*" || h.SID() != "fr42" {
			t.Errorf("unexpected result %+v", h)
		}
	})

	t.Run("ANSI-C quoted cookie", func(t *testing.T) {
		h, err := ParseCurlCommand(`curl https://www.deezer.com/ -b $'dzr=a\'b; sid=fr7'`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h.Cookie != "dzr=a'b; sid=fr7" {
			t.Errorf("unexpected cookie %q", h.Cookie)
		}
	})

	t.Run("escaped quote inside double quotes", func(t *testing.T) {
		h, err := ParseCurlCommand(`curl -H "x-note: say \"hi\"" https://www.deezer.com/`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h.Headers["x-note"] != `say "hi"` {
			t.Errorf("unexpected header %q", h.Headers["x-note"])
		}
	})

	t.Run("windows line continuations", func(t *testing.T) {
		h, err := ParseCurlCommand("curl https://www.deezer.com/ \\\r\n  -b 'sid=fr9'")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h.SID() != "fr9" {
			t.Errorf("unexpected sid %q", h.SID())
		}
	})

	t.Run("unterminated quote", func(t *testing.T) {
		if _, err := ParseCurlCommand(`curl -b 'sid=fr1`); err == nil {
			t.Error("expected error for unterminated quote")
		}
	})
}

func TestSplitShellWords(t *testing.T) {
	got, err := splitShellWords(`curl  'a b' "c d" e\ f ''`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"curl", "a b", "c d", "e f", ""}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
