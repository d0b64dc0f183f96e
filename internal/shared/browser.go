package shared

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand returns the program and arguments that open target on goos.
//
// A non-empty $BROWSER takes precedence on every platform.
func browserCommand(goos, target string) (string, []string, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", nil, fmt.Errorf("%w: refusing to open %q", ErrInvalidArgument, target)
	}

	if browser := strings.TrimSpace(os.Getenv("BROWSER")); browser != "" {
		return browser, []string{target}, nil
	}

	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenBrowser opens target in the user's browser, used for the Deezer login page.
func OpenBrowser(target string) error {
	name, args, err := browserCommand(getRuntime(), target)
	if err != nil {
		return err
	}

	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
