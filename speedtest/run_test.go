package speedtest

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestRun_EndToEnd(t *testing.T) {
	cfg := Config{
		BaseURL:        "http://test.invalid",
		PayloadSizes:   []int64{1_000_000},
		RunsPerSize:    3,
		LatencySamples: 2,
	}

	transport := &stubTransport{send: func(spec RequestSpec) (*Response, error) {
		switch {
		case spec.Method == http.MethodPost:
			return &Response{StatusCode: 200, Duration: 200 * time.Millisecond}, nil
		case spec.URL == "http://test.invalid/__down?bytes=0":
			header := timingHeader("10.0")
			header.Set("cf-meta-city", "Berlin")
			header.Set("cf-meta-country", "DE")
			header.Set("cf-meta-ip", "203.0.113.7")
			header.Set("cf-meta-asn", "64496")
			header.Set("cf-meta-colo", "TXL")
			return &Response{StatusCode: 200, Header: header, Duration: 50 * time.Millisecond}, nil
		default:
			return &Response{StatusCode: 200, BodySize: 1_000_000, Duration: 100 * time.Millisecond}, nil
		}
	}}

	report, err := Run(transport, cfg, nil)

	assert.NilError(t, err)

	// 1 metadata + 3 latency probes + 3 downloads + 3 uploads
	assert.Equal(t, len(transport.calls), 10)

	assert.Equal(t, report.Metadata.City, "Berlin")
	assert.Equal(t, report.Metadata.Colo, "TXL")

	assert.Equal(t, len(report.LatencySamples), cfg.LatencySamples+1)
	assert.Equal(t, report.LatencyMeanMS, 40.0)

	assert.Equal(t, len(report.Measurements), 6)
	assert.Equal(t, report.DownloadStats.Mean, 80.0)
	assert.Equal(t, report.DownloadStats.NSamples, 3)
	assert.Equal(t, report.UploadStats.Mean, 40.0)

	assert.Equal(t, len(report.DownloadBySize), 1)
	assert.Equal(t, report.DownloadBySize[0].PayloadSize, int64(1_000_000))
	assert.Equal(t, report.DownloadBySize[0].Mean, 80.0)
}

func TestRun_MetadataFailureAborts(t *testing.T) {
	transport := &stubTransport{send: func(spec RequestSpec) (*Response, error) {
		return nil, &TransportError{Op: spec.Method, URL: spec.URL, Err: errors.New("connection refused")}
	}}

	_, err := Run(transport, testConfig(), nil)

	assert.ErrorContains(t, err, "could not fetch metadata")
	assert.Equal(t, len(transport.calls), 1)
}
