package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestVerbosityControlsLevel(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.InfoLevel},
		{1, zerolog.DebugLevel},
		{2, zerolog.TraceLevel},
		{5, zerolog.TraceLevel},
	}
	for _, c := range cases {
		logger := New(c.verbosity, &bytes.Buffer{})
		if logger.GetLevel() != c.want {
			t.Errorf("verbosity=%d: want level %v, got %v", c.verbosity, c.want, logger.GetLevel())
		}
	}
}

func TestLogsAreWrittenToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(0, &buf)
	logger.Info().Msg("hello")
	if buf.Len() == 0 {
		t.Fatal("expected the console writer to produce output")
	}
}
