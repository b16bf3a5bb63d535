package speedtest

// stubTransport substitutes deterministic responses for real network I/O and
// records every request it was asked to send.
type stubTransport struct {
	calls []RequestSpec
	send  func(spec RequestSpec) (*Response, error)
}

func (s *stubTransport) Send(spec RequestSpec) (*Response, error) {
	s.calls = append(s.calls, spec)
	return s.send(spec)
}

func testConfig() Config {
	return Config{
		BaseURL:        "http://test.invalid",
		PayloadSizes:   []int64{1_000_000},
		RunsPerSize:    3,
		LatencySamples: 4,
	}
}
