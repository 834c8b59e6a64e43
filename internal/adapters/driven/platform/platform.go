package platform

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
)

// Ensure Desktop implements the interface.
var _ driven.Platform = (*Desktop)(nil)

// Operating system constants.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// runner starts an external command.
type runner func(ctx context.Context, name string, args ...string) error

// Desktop dials and copies using the host operating system.
type Desktop struct {
	goos  string
	run   runner
	write func(text string) error
}

// NewDesktop creates a platform adapter for the running OS.
func NewDesktop() *Desktop {
	return &Desktop{
		goos:  runtime.GOOS,
		run:   startCommand,
		write: clipboard.WriteAll,
	}
}

// Dial opens tel:<number> with the default handler.
func (d *Desktop) Dial(ctx context.Context, number string) error {
	uri, err := TelURI(number)
	if err != nil {
		return err
	}
	name, args, err := openCommand(d.goos, uri)
	if err != nil {
		return err
	}
	if err := d.run(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return nil
}

// Copy places text on the clipboard.
func (d *Desktop) Copy(text string) error {
	if clipboard.Unsupported && d.goos == runtime.GOOS {
		return fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	if err := d.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// TelURI builds a tel: URI, keeping a leading + and digits only.
func TelURI(number string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(number) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	digits := strings.TrimPrefix(b.String(), "+")
	if digits == "" {
		return "", fmt.Errorf("no digits in phone number %q", number)
	}
	return "tel:" + b.String(), nil
}

// openCommand returns the command that opens uri on goos.
func openCommand(goos, uri string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{uri}, nil
	case osLinux:
		return "xdg-open", []string{uri}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", uri}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

func startCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// The opener may outlive us; reap it in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}
