package speedtest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// OutputFormat selects how a finished report is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(s)); format {
	case FormatText, FormatJSON, FormatCSV:
		return format, nil
	default:
		return "", errors.Errorf("unknown output format %q", s)
	}
}

// Report is the complete outcome of a run.
type Report struct {
	Metadata       *Metadata     `json:"metadata"`
	LatencySamples []float64     `json:"latency_samples_ms"`
	LatencyMeanMS  float64       `json:"latency_mean_ms"`
	Measurements   []Measurement `json:"measurements"`
	DownloadStats  *Stats        `json:"download"`
	UploadStats    *Stats        `json:"upload"`
	DownloadBySize []SizeStats   `json:"download_by_size"`
	UploadBySize   []SizeStats   `json:"upload_by_size"`
}

// measurementRow is the machine-readable table shape: one row per timed
// transfer.
type measurementRow struct {
	Type        string  `csv:"type"`
	PayloadSize int64   `csv:"payload_size_bytes"`
	Mbit        float64 `csv:"throughput_mbit"`
}

func (r *Report) Render(w io.Writer, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(r), "could not encode JSON report")
	case FormatCSV:
		rows := make([]*measurementRow, 0, len(r.Measurements))
		for _, m := range r.Measurements {
			rows = append(rows, &measurementRow{
				Type:        m.Type.String(),
				PayloadSize: m.PayloadSize,
				Mbit:        m.MbitPerSec,
			})
		}
		return errors.Wrap(gocsv.Marshal(&rows, w), "could not encode CSV report")
	default:
		return r.renderText(w)
	}
}

func (r *Report) renderText(w io.Writer) error {
	if r.Metadata != nil {
		fmt.Fprintf(w, "SrcIP: %s (AS%s)\n", r.Metadata.IP, r.Metadata.ASN)
		fmt.Fprintf(w, "SrcLocation: %s, %s\n", r.Metadata.City, r.Metadata.Country)
		fmt.Fprintf(w, "DstColocation: %s\n", r.Metadata.Colo)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Latency-mean: %.2f ms\n", r.LatencyMeanMS)
	fmt.Fprintf(w, "Latency-n: %d\n", len(r.LatencySamples))
	fmt.Fprintln(w)

	writeSizeStats(w, "Download", r.DownloadBySize)
	writeStats(w, "Download", r.DownloadStats)
	fmt.Fprintln(w)

	writeSizeStats(w, "Upload", r.UploadBySize)
	writeStats(w, "Upload", r.UploadStats)

	return nil
}

func writeSizeStats(w io.Writer, label string, groups []SizeStats) {
	for _, group := range groups {
		fmt.Fprintf(w, "%s %s: min %.2f, max %.2f, avg %.2f Mbit/s\n",
			label, FormatBytes(group.PayloadSize), group.Min, group.Max, group.Mean)
	}
}

func writeStats(w io.Writer, label string, stats *Stats) {
	if stats == nil {
		return
	}
	fmt.Fprintf(w, "%s: min %.2f, max %.2f, avg %.2f Mbit/s (%d samples)\n",
		label, stats.Min, stats.Max, stats.Mean, stats.NSamples)
}
