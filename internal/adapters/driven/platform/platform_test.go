package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	name string
	args []string
}

func newTestDesktop(goos string) (*Desktop, *[]recordedCommand, *[]string) {
	var commands []recordedCommand
	var copied []string
	d := &Desktop{
		goos: goos,
		run: func(_ context.Context, name string, args ...string) error {
			commands = append(commands, recordedCommand{name: name, args: args})
			return nil
		},
		write: func(text string) error {
			copied = append(copied, text)
			return nil
		},
	}
	return d, &commands, &copied
}

func TestTelURI(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"10177", "tel:10177", false},
		{"012 345 6789", "tel:0123456789", false},
		{"+27 (21) 480-7700", "tel:+27214807700", false},
		{"1+2", "tel:12", false},
		{"", "", true},
		{"+", "", true},
		{"n/a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := TelURI(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDesktop_Dial(t *testing.T) {
	tests := []struct {
		goos string
		want recordedCommand
	}{
		{osDarwin, recordedCommand{"open", []string{"tel:10111"}}},
		{osLinux, recordedCommand{"xdg-open", []string{"tel:10111"}}},
		{osWindows, recordedCommand{"rundll32", []string{"url.dll,FileProtocolHandler", "tel:10111"}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			d, commands, _ := newTestDesktop(tt.goos)

			require.NoError(t, d.Dial(context.Background(), "10111"))

			require.Len(t, *commands, 1)
			assert.Equal(t, tt.want, (*commands)[0])
		})
	}
}

func TestDesktop_Dial_Errors(t *testing.T) {
	t.Run("unsupported os", func(t *testing.T) {
		d, commands, _ := newTestDesktop("plan9")
		err := d.Dial(context.Background(), "10111")
		assert.ErrorContains(t, err, "unsupported platform")
		assert.Empty(t, *commands)
	})

	t.Run("opener fails", func(t *testing.T) {
		d, _, _ := newTestDesktop(osLinux)
		d.run = func(context.Context, string, ...string) error { return errors.New("exec: not found") }
		err := d.Dial(context.Background(), "10111")
		assert.ErrorContains(t, err, "open tel:10111")
	})

	t.Run("bad number", func(t *testing.T) {
		d, commands, _ := newTestDesktop(osLinux)
		assert.Error(t, d.Dial(context.Background(), "none"))
		assert.Empty(t, *commands)
	})
}

func TestDesktop_Copy(t *testing.T) {
	d, _, copied := newTestDesktop("test-os")

	require.NoError(t, d.Copy("0214807700"))

	assert.Equal(t, []string{"0214807700"}, *copied)
}

func TestDesktop_Copy_Error(t *testing.T) {
	d, _, _ := newTestDesktop("test-os")
	d.write = func(string) error { return errors.New("clipboard busy") }

	err := d.Copy("10177")

	assert.ErrorContains(t, err, "clipboard busy")
}
