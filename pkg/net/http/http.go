package http

import (
	"fmt"
	"net/http"
	"strings"
)

// HeaderFromStringSlice parses NAME=VALUE pairs into a header.
func HeaderFromStringSlice(s []string) (http.Header, error) {
	h := make(http.Header)
	for _, hs := range s {
		k, v, ok := strings.Cut(hs, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header, must be of the form <HEADER_NAME>=<HEADER_VALUE>: %s", hs)
		}
		h.Add(k, v)
	}

	return h, nil
}
