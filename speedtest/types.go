package speedtest

// TestType identifies the direction of a throughput measurement.
type TestType int

const (
	Download TestType = iota
	Upload
)

func (t TestType) String() string {
	if t == Upload {
		return "Upload"
	}
	return "Download"
}

func (t TestType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Measurement is the outcome of one timed transfer. Values are never
// mutated after creation.
type Measurement struct {
	Type        TestType `json:"type"`
	PayloadSize int64    `json:"payload_size_bytes"`
	MbitPerSec  float64  `json:"throughput_mbit"`
}

// Metadata describes the client and the edge location that served the run,
// as reported by the endpoint's response headers.
type Metadata struct {
	City    string `json:"city"`
	Country string `json:"country"`
	IP      string `json:"ip"`
	ASN     string `json:"asn"`
	Colo    string `json:"colo"`
}

// Stats is a min/max/mean reduction of a measurement batch.
type Stats struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	NSamples int     `json:"n_samples"`
}

// SizeStats is a Stats reduction restricted to one payload size.
type SizeStats struct {
	PayloadSize int64 `json:"payload_size_bytes"`
	Stats
}

const (
	DefaultBaseURL        = "https://speed.cloudflare.com"
	DefaultRunsPerSize    = 5
	DefaultLatencySamples = 25
)

// DefaultPayloadSizes are the transfer sizes exercised by a run, in order.
var DefaultPayloadSizes = []int64{100_000, 1_000_000, 10_000_000}

// Config carries the run parameters. It is injected rather than read from
// package globals so tests can point the engine at a mock endpoint with
// small run counts.
type Config struct {
	BaseURL        string
	PayloadSizes   []int64
	RunsPerSize    int
	LatencySamples int
}

func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		PayloadSizes:   append([]int64(nil), DefaultPayloadSizes...),
		RunsPerSize:    DefaultRunsPerSize,
		LatencySamples: DefaultLatencySamples,
	}
}

// WithMaxPayloadSize drops payload sizes above max, keeping order.
func (c Config) WithMaxPayloadSize(max int64) Config {
	kept := []int64{}

	for _, size := range c.PayloadSizes {
		if size <= max {
			kept = append(kept, size)
		}
	}

	c.PayloadSizes = kept

	return c
}
