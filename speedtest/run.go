package speedtest

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Run executes the full measurement sequence: metadata fetch, latency probe,
// download batch, upload batch. Phases run strictly one after another and any
// failure aborts the run. Partial results from a degraded run would misstate
// link quality, so nothing is retried.
func Run(t Transport, cfg Config, progress ProgressFunc) (*Report, error) {
	metadata, err := FetchMetadata(t, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch metadata")
	}
	logrus.WithFields(logrus.Fields{"ip": metadata.IP, "colo": metadata.Colo}).Debug("metadata fetched")

	latencySamples, latencyMean, err := ProbeLatency(t, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "latency measurement failed")
	}

	downloads, err := RunThroughputTest(t, Download, cfg, progress)
	if err != nil {
		return nil, errors.Wrap(err, "download measurement failed")
	}

	uploads, err := RunThroughputTest(t, Upload, cfg, progress)
	if err != nil {
		return nil, errors.Wrap(err, "upload measurement failed")
	}

	downloadStats, err := Summarize(downloads)
	if err != nil {
		return nil, errors.Wrap(err, "download summary failed")
	}
	downloadBySize, err := SummarizeBySize(downloads)
	if err != nil {
		return nil, errors.Wrap(err, "download summary failed")
	}

	uploadStats, err := Summarize(uploads)
	if err != nil {
		return nil, errors.Wrap(err, "upload summary failed")
	}
	uploadBySize, err := SummarizeBySize(uploads)
	if err != nil {
		return nil, errors.Wrap(err, "upload summary failed")
	}

	return &Report{
		Metadata:       metadata,
		LatencySamples: latencySamples,
		LatencyMeanMS:  latencyMean,
		Measurements:   append(append([]Measurement{}, downloads...), uploads...),
		DownloadStats:  downloadStats,
		UploadStats:    uploadStats,
		DownloadBySize: downloadBySize,
		UploadBySize:   uploadBySize,
	}, nil
}
