package probe

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Target is one probe destination from a target-list file.
type Target struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LoadTargets reads a JSON array of targets from path. Entries with an empty
// URL are dropped; an entry with an empty name falls back to its hostname.
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}

	var raw []Target
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse targets %s: %w", path, err)
	}

	targets := raw[:0]
	for _, t := range raw {
		if strings.TrimSpace(t.URL) == "" {
			continue
		}
		if t.Name == "" {
			t.Name = Hostname(t.URL)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// Hostname extracts the host part of a URL, tolerating bare hosts and
// schemeless inputs. When nothing parseable remains it returns the input
// unchanged so callers always have something to display.
func Hostname(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
