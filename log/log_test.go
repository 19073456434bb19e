package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docgen/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    log.Level
		wantErr bool
	}{
		"error":            {input: "error", want: log.LevelError},
		"warn":             {input: "warn", want: log.LevelWarn},
		"warning alias":    {input: "warning", want: log.LevelWarn},
		"info":             {input: "info", want: log.LevelInfo},
		"debug":            {input: "debug", want: log.LevelDebug},
		"case insensitive": {input: "DEBUG", want: log.LevelDebug},
		"unknown":          {input: "trace", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    log.Format
		wantErr bool
	}{
		"json":             {input: "json", want: log.FormatJSON},
		"logfmt":           {input: "logfmt", want: log.FormatLogfmt},
		"text":             {input: "text", want: log.FormatText},
		"case insensitive": {input: "JSON", want: log.FormatJSON},
		"unknown":          {input: "xml", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrUnknownLogFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check  func(*testing.T, []byte)
		format log.Format
	}{
		"json handler": {
			format: log.FormatJSON,
			check: func(t *testing.T, output []byte) {
				t.Helper()

				var entry map[string]any

				require.NoError(t, json.Unmarshal(output, &entry))
				assert.Equal(t, "generating documentation", entry["msg"])
				assert.Equal(t, "INFO", entry["level"])
				assert.Equal(t, "build.groovy", entry["file"])
			},
		},
		"logfmt handler": {
			format: log.FormatLogfmt,
			check: func(t *testing.T, output []byte) {
				t.Helper()

				out := string(output)
				assert.Contains(t, out, "level=INFO")
				assert.Contains(t, out, `msg="generating documentation"`)
				assert.Contains(t, out, "file=build.groovy")
			},
		},
		"text handler": {
			format: log.FormatText,
			check: func(t *testing.T, output []byte) {
				t.Helper()

				out := string(output)
				assert.Contains(t, out, "INFO")
				assert.Contains(t, out, "generating documentation")
				assert.Contains(t, out, "file=build.groovy")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := log.NewHandler(&buf, log.LevelInfo, tc.format)
			require.NotNil(t, handler)

			slog.New(handler).Info("generating documentation", slog.String("file", "build.groovy"))

			tc.check(t, buf.Bytes())
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   string
		format  string
		wantErr bool
	}{
		"valid":          {level: "info", format: "json"},
		"invalid level":  {level: "loud", format: "json", wantErr: true},
		"invalid format": {level: "info", format: "xml", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler, err := log.NewHandlerFromStrings(&buf, tc.level, tc.format)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				assert.Nil(t, handler)

				return
			}

			require.NoError(t, err)
			slog.New(handler).Info("hello")
			assert.Contains(t, buf.String(), "hello")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		logFunc func(*slog.Logger)
		level   log.Level
		want    bool
	}{
		"info passes info": {
			level:   log.LevelInfo,
			logFunc: func(l *slog.Logger) { l.Info("message") },
			want:    true,
		},
		"info blocks debug": {
			level:   log.LevelInfo,
			logFunc: func(l *slog.Logger) { l.Debug("message") },
		},
		"error blocks warn": {
			level:   log.LevelError,
			logFunc: func(l *slog.Logger) { l.Warn("message") },
		},
		"debug passes debug": {
			level:   log.LevelDebug,
			logFunc: func(l *slog.Logger) { l.Debug("message") },
			want:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tc.logFunc(slog.New(log.NewHandler(&buf, tc.level, log.FormatJSON)))

			if tc.want {
				assert.Contains(t, buf.String(), "message")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "debug", "--log-format", "json"}))
	require.NoError(t, cfg.RegisterCompletions(cmd))

	for flag, want := range map[string][]string{
		"log-level":  log.GetAllLevelStrings(),
		"log-format": log.GetAllFormatStrings(),
	} {
		fn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, flag)

		values, directive := fn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Equal(t, want, values)
	}

	var buf bytes.Buffer

	handler, err := cfg.NewHandler(&buf)
	require.NoError(t, err)

	slog.New(handler).Debug("verbose")
	assert.Contains(t, buf.String(), `"msg":"verbose"`)
}
