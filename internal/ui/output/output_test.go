package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/stamp/internal/ui/output"
)

func TestColorProfile(t *testing.T) {
	tests := []struct {
		name    string
		noColor string
		ci      string
		want    termenv.Profile
	}{
		{name: "NoColorWins", noColor: "1", ci: "true", want: termenv.Ascii},
		{name: "CIGetsANSI", ci: "true", want: termenv.ANSI},
		{name: "CIOne", ci: "1", want: termenv.ANSI},
		{name: "RedirectedOutput", want: termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CI", tt.ci)

			assert.Equal(t, tt.want, output.ColorProfile(&bytes.Buffer{}))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, output.IsTerminal(&bytes.Buffer{}))
	assert.False(t, output.IsTerminal(nil))
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString(out.String("plain").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "plain", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
