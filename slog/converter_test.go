package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/relic/mock"
	relicslog "github.com/fwojciec/relic/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "**b**", nil },
		}

		conv := relicslog.NewLoggingConverter(inner, logger)
		md, err := conv.Convert("<b>b</b>")

		require.NoError(t, err)
		assert.Equal(t, "**b**", md)
		output := buf.String()
		assert.Contains(t, output, "convert")
		assert.Contains(t, output, "html_bytes=8")
		assert.Contains(t, output, "markdown_bytes=5")
	})

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "", errors.New("boom") },
		}

		_, err := relicslog.NewLoggingConverter(inner, logger).Convert("<p>")

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})
}
