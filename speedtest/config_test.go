package speedtest

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, cfg.BaseURL, "https://speed.cloudflare.com")
	assert.DeepEqual(t, cfg.PayloadSizes, []int64{100_000, 1_000_000, 10_000_000})
	assert.Equal(t, cfg.RunsPerSize, DefaultRunsPerSize)
	assert.Equal(t, cfg.LatencySamples, DefaultLatencySamples)

	// the config owns its slice; mutating it must not leak into the defaults
	cfg.PayloadSizes[0] = 1
	assert.Equal(t, DefaultPayloadSizes[0], int64(100_000))
}

func TestConfigWithMaxPayloadSize(t *testing.T) {
	cfg := DefaultConfig().WithMaxPayloadSize(1_000_000)

	assert.DeepEqual(t, cfg.PayloadSizes, []int64{100_000, 1_000_000})
}

func TestConfigWithMaxPayloadSize_DropsAll(t *testing.T) {
	cfg := DefaultConfig().WithMaxPayloadSize(10)

	assert.Equal(t, len(cfg.PayloadSizes), 0)
}
