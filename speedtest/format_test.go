package speedtest

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, FormatBytes(500), "500 bytes")
	assert.Equal(t, FormatBytes(999), "999 bytes")
	assert.Equal(t, FormatBytes(1_000), "1KB")
	assert.Equal(t, FormatBytes(100_000), "100KB")
	assert.Equal(t, FormatBytes(999_999), "999KB")
	assert.Equal(t, FormatBytes(1_000_000), "1MB")
	assert.Equal(t, FormatBytes(10_000_000), "10MB")
	assert.Equal(t, FormatBytes(2_500_000_000), "2GB")
}
