package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInts parses a whitespace-separated integer list, the format the
// command-line tools use for block counts and input shapes.
func ParseInts(s string) ([]int, error) {
	parts := strings.Fields(s)
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		out[i] = n
	}
	return out, nil
}

// ParseShape parses an input-shape flag and validates that every dimension
// is positive.
func ParseShape(s string) ([]int, error) {
	dims, err := ParseInts(s)
	if err != nil {
		return nil, err
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("input shape is empty")
	}
	for i, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("dimension %d must be positive, got %d", i, d)
		}
	}
	return dims, nil
}
