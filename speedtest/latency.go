package speedtest

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const serverTimingHeader = "Server-Timing"

var cfRequestDuration = regexp.MustCompile(`cfRequestDuration;dur=([0-9.]+)`)

// ProbeLatency measures round-trip latency with the server's own processing
// time subtracted out, approximating pure network latency. It issues
// cfg.LatencySamples+1 zero-byte downloads; the extra iteration warms the
// connection and its sample is counted, matching the observable sample count
// of the original tool. The server-reported duration can exceed the observed
// one on fast links due to measurement skew, so corrected values below zero
// are clamped to zero.
//
// A response without a parseable Server-Timing header aborts the whole probe
// with a ProtocolError. Silently substituting zero would understate latency.
func ProbeLatency(t Transport, cfg Config) ([]float64, float64, error) {
	samples := make([]float64, 0, cfg.LatencySamples+1)

	for i := 0; i <= cfg.LatencySamples; i++ {
		resp, err := t.Send(RequestSpec{Method: http.MethodGet, URL: downURL(cfg.BaseURL, 0)})
		if err != nil {
			return nil, 0, errors.Wrap(err, "latency probe failed")
		}

		serverMS, err := extractServerTiming(resp.Header)
		if err != nil {
			return nil, 0, err
		}

		clientMS := float64(resp.Duration.Microseconds()) / 1000
		corrected := clientMS - serverMS
		if corrected < 0 {
			corrected = 0
		}

		logrus.WithFields(logrus.Fields{
			"client_ms":  clientMS,
			"server_ms":  serverMS,
			"latency_ms": corrected,
		}).Debug("latency sample")

		samples = append(samples, corrected)
	}

	return samples, meanOf(samples), nil
}

// extractServerTiming pulls the cfRequestDuration value, in milliseconds,
// out of the Server-Timing header.
func extractServerTiming(header http.Header) (float64, error) {
	value := header.Get(serverTimingHeader)
	if value == "" {
		return 0, &ProtocolError{Header: serverTimingHeader, Reason: "header missing"}
	}

	match := cfRequestDuration.FindStringSubmatch(value)
	if match == nil {
		return 0, &ProtocolError{Header: serverTimingHeader, Reason: fmt.Sprintf("no cfRequestDuration in %q", value)}
	}

	durMS, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, &ProtocolError{Header: serverTimingHeader, Reason: fmt.Sprintf("unparseable duration %q", match[1])}
	}

	return durMS, nil
}
