package speedtest

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ProgressFunc receives a completion notice after each timed transfer: the
// 0-based index of the finished run, the total number of runs in the batch,
// and a human-readable status line.
type ProgressFunc func(index, total int, status string)

// RunThroughputTest runs cfg.RunsPerSize timed transfers for every payload
// size in cfg.PayloadSizes, strictly one request in flight at a time, and
// returns one Measurement per transfer in issuance order. All runs for a
// payload size complete before the next size starts. Concurrent transfers
// would contend for the same bottleneck link and corrupt each other's
// readings, so the loop never overlaps requests.
func RunThroughputTest(t Transport, testType TestType, cfg Config, progress ProgressFunc) ([]Measurement, error) {
	total := len(cfg.PayloadSizes) * cfg.RunsPerSize
	measurements := make([]Measurement, 0, total)

	for _, size := range cfg.PayloadSizes {
		for run := 0; run < cfg.RunsPerSize; run++ {
			measurement, resp, err := measureOnce(t, testType, cfg.BaseURL, size)
			if err != nil {
				return nil, errors.Wrapf(err, "%s test failed at %s", testType, FormatBytes(size))
			}

			index := len(measurements)
			measurements = append(measurements, *measurement)

			if progress != nil {
				progress(index, total, fmt.Sprintf("%s %s: %.2f Mbit/s (%d ms, status %d)",
					testType, FormatBytes(size), measurement.MbitPerSec,
					resp.Duration.Milliseconds(), resp.StatusCode))
			}
		}
	}

	return measurements, nil
}

func measureOnce(t Transport, testType TestType, baseURL string, size int64) (*Measurement, *Response, error) {
	spec := RequestSpec{Method: http.MethodGet, URL: downURL(baseURL, size)}
	if testType == Upload {
		spec = RequestSpec{Method: http.MethodPost, URL: upURL(baseURL), BodySize: size}
	}

	resp, err := t.Send(spec)
	if err != nil {
		return nil, nil, err
	}

	// The endpoint contract guarantees the download body is exactly the
	// requested size; measure what actually arrived.
	transferred := size
	if testType == Download {
		transferred = resp.BodySize
	}

	mbit := float64(transferred) * 8 / 1_000_000 / resp.Duration.Seconds()

	logrus.WithFields(logrus.Fields{
		"type":   testType.String(),
		"bytes":  transferred,
		"ms":     resp.Duration.Milliseconds(),
		"mbit":   mbit,
		"status": resp.StatusCode,
	}).Debug("timed transfer")

	return &Measurement{Type: testType, PayloadSize: size, MbitPerSec: mbit}, resp, nil
}
