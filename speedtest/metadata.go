package speedtest

import (
	"fmt"
	"net/http"
)

var metaHeaders = []struct {
	header string
	label  string
}{
	{"cf-meta-city", "City"},
	{"cf-meta-country", "Country"},
	{"cf-meta-ip", "IP"},
	{"cf-meta-asn", "ASN"},
	{"cf-meta-colo", "Colo"},
}

// FetchMetadata issues a single zero-byte download and reads the client and
// edge location headers. A missing header yields a "<Label> N/A" placeholder
// rather than an error; only transport failures propagate.
func FetchMetadata(t Transport, cfg Config) (*Metadata, error) {
	resp, err := t.Send(RequestSpec{Method: http.MethodGet, URL: downURL(cfg.BaseURL, 0)})
	if err != nil {
		return nil, err
	}

	fields := make([]string, len(metaHeaders))
	for i, meta := range metaHeaders {
		value := resp.Header.Get(meta.header)
		if value == "" {
			value = meta.label + " N/A"
		}
		fields[i] = value
	}

	return &Metadata{
		City:    fields[0],
		Country: fields[1],
		IP:      fields[2],
		ASN:     fields[3],
		Colo:    fields[4],
	}, nil
}

func downURL(base string, size int64) string {
	return fmt.Sprintf("%s/__down?bytes=%d", base, size)
}

func upURL(base string) string {
	return fmt.Sprintf("%s/__up", base)
}
