package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/speak"
)

func TestLogEventLevels(t *testing.T) {
	tests := []struct {
		name  string
		event speak.Event
		want  string
	}{
		{
			name:  "chunk",
			event: speak.Event{Type: speak.EventChunkEmitted},
			want:  "debug",
		},
		{
			name:  "restore fallback",
			event: speak.Event{Type: speak.EventRestoreFallback, Err: speak.ErrDocumentUnavailable},
			want:  "warn",
		},
		{
			name: "store failure",
			event: speak.Event{
				Type: speak.EventPersistFailed,
				Err:  speak.NewError(errors.New("disk full"), "tracker", "persist").WithSeverity(speak.SeverityError),
			},
			want: "error",
		},
		{
			name:  "unrecoverable",
			event: speak.Event{Type: speak.EventJumped, Err: fmt.Errorf("%w: bad settings", speak.ErrInvalidConfig)},
			want:  "error",
		},
	}

	defer log.SetOutput(os.Stderr)
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(log.TextFormatter)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log.SetOutput(&buf)
			log.SetLevel(log.DebugLevel)
			log.SetFormatter(log.JSONFormatter)

			logEvent(tt.event)

			if got := buf.String(); !strings.Contains(got, `"level":"`+tt.want+`"`) {
				t.Errorf("logEvent() wrote %q, want level %s", got, tt.want)
			}
		})
	}
}
