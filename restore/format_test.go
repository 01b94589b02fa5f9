package restore_test

import (
	"testing"

	"github.com/fwojciec/relic/restore"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 / 2, "2.5 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, restore.FormatBytes(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestResult_Bytes(t *testing.T) {
	t.Parallel()

	r := &restore.Result{Emitted: []restore.Emitted{{Bytes: 10}, {Bytes: 32}}}
	assert.Equal(t, 42, r.Bytes())
	assert.Zero(t, (&restore.Result{}).Bytes())
}
