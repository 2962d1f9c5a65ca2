package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docsift/docsift/extract"
)

// parsePageRange parses a "start-end" flag value into a 1-based inclusive
// range. A single number means a one-page range.
func parsePageRange(s string) (extract.PageRange, error) {
	if s == "" {
		return extract.PageRange{}, nil
	}
	var r extract.PageRange
	first, rest, found := strings.Cut(s, "-")
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return r, fmt.Errorf("invalid page range %q", s)
	}
	r.Start, r.End = start, start
	if found {
		end, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return r, fmt.Errorf("invalid page range %q", s)
		}
		r.End = end
	}
	if r.Start < 1 || r.End < r.Start {
		return r, fmt.Errorf("invalid page range %q", s)
	}
	return r, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
