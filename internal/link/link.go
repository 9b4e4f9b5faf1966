// Package link carries protocol payloads in URL fragments. The fragment never
// reaches a server, so a link is the whole transport.
package link

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNoPayload = errors.New("link carries no payload")

// Build returns base with payload as its fragment, replacing any fragment
// already present.
func Build(base, payload string) (string, error) {
	if strings.TrimSpace(payload) == "" {
		return "", ErrNoPayload
	}
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}
	u.Fragment = payload
	u.RawFragment = ""
	return u.String(), nil
}

// Extract returns the payload from a shared link. A string that is not a URL
// with a fragment is taken to be a bare payload, so users can paste either.
func Extract(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoPayload
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		frag := strings.TrimSpace(raw[i+1:])
		if unescaped, err := url.PathUnescape(frag); err == nil {
			frag = unescaped
		}
		if frag == "" {
			return "", ErrNoPayload
		}
		return frag, nil
	}
	if strings.Contains(raw, "://") {
		return "", ErrNoPayload
	}
	return raw, nil
}
