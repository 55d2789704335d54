// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("new logger honors the level", func(t *testing.T) {
		l := New(slog.LevelWarn)
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
		if l.Enabled(t.Context(), slog.LevelInfo) {
			t.Error("expected info level to be disabled")
		}
		if !l.Enabled(t.Context(), slog.LevelWarn) {
			t.Error("expected warn level to be enabled")
		}
	})
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  []string
		skip  []string
	}{
		{slog.LevelDebug, []string{"msg=debug", "msg=info", "msg=warn", "msg=error"}, nil},
		{slog.LevelInfo, []string{"msg=info", "msg=warn", "msg=error"}, []string{"msg=debug"}},
		{slog.LevelWarn, []string{"msg=warn", "msg=error"}, []string{"msg=debug", "msg=info"}},
		{slog.LevelError, []string{"msg=error"}, []string{"msg=debug", "msg=info", "msg=warn"}},
	}
	for _, tc := range tests {
		t.Run("records below "+tc.level.String()+" are dropped", func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewLogger(tc.level, buf)
			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			l.Error("error")

			for _, want := range tc.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %q to be logged, got: %s", want, buf.String())
				}
			}
			for _, skip := range tc.skip {
				if strings.Contains(buf.String(), skip) {
					t.Errorf("did not expect %q to be logged, got: %s", skip, buf.String())
				}
			}
		})
	}
	t.Run("attributes added with With are kept", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelInfo, buf)
		l.With(slog.String("load_id", "abc")).Info("wind data loaded")
		if !strings.Contains(buf.String(), "load_id=abc") {
			t.Errorf("expected load ID attribute, got: %s", buf.String())
		}
	})
}

func TestErr(t *testing.T) {
	t.Run("error attributes are logged", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		want := "intentionally failing"
		l.Error("this is a test", Err(errors.New(want)))

		if !strings.Contains(buf.String(), `error="`+want+`"`) {
			t.Errorf("expected error message to contain %q, got: %q", want, buf.String())
		}
	})
	t.Run("wrapped errors are logged with their chain", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		err := errors.Join(errors.New("network error"), errors.New("timeout"))
		l.Warn("load failed", Err(err))
		if !strings.Contains(buf.String(), "network error") || !strings.Contains(buf.String(), "timeout") {
			t.Errorf("expected both errors to be logged, got: %q", buf.String())
		}
	})
}
