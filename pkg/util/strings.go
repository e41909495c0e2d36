package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFloatList splits s on sep, skips blank segments and parses the rest
// as finite decimal float64 values. Hex floats are rejected. The first
// segment that is not a finite number is reported with its 1-based position
// among all segments.
func ParseFloatList(s, sep string) ([]float64, error) {
	parts := strings.Split(s, sep)
	out := make([]float64, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if isHex(p) {
			return nil, fmt.Errorf("segment %d %q: hex numbers are not accepted", i+1, p)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i+1, p, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("segment %d %q: not a finite number", i+1, p)
		}
		out = append(out, v)
	}
	return out, nil
}

func isHex(p string) bool {
	p = strings.TrimLeft(p, "+-")
	return len(p) > 1 && p[0] == '0' && (p[1] == 'x' || p[1] == 'X')
}

// Preview returns the first n characters of s followed by "..." when s is
// longer.
func Preview(s string, n int) string {
	if s == "" {
		return "No data"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
