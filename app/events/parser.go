package events

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/polyfeed/polyfeed/models"
)

// The upstream encodes outcome labels, prices and token ids in several
// inconsistent shapes: a real array, a bare JSON-encoded string, or an array
// whose single element is itself a JSON-encoded array. The decoder chain
// below resolves all of them to a plain string slice, falling back to empty
// on anything unrecognizable. Empty means "no data available", not an error.

// decodeStringArray unwraps one level of double encoding when the input is a
// single element that looks like a JSON array.
func decodeStringArray(raw []string) []string {
	if len(raw) != 1 {
		return raw
	}

	candidate := strings.TrimSpace(raw[0])
	if !strings.HasPrefix(candidate, "[") {
		return raw
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(candidate), &items); err != nil {
		return raw
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			out = append(out, "")
		}
	}
	return out
}

// ParseLabels decodes raw outcome labels into a plain string slice.
// Malformed input yields an empty slice, never an error.
func ParseLabels(raw models.StringOrList) []string {
	if len(raw) == 0 {
		return []string{}
	}

	labels := decodeStringArray(raw)
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		out = append(out, strings.TrimSpace(label))
	}
	return out
}

// ParsePrices decodes raw outcome prices into 0-100 scaled values. The
// upstream encodes prices as decimal fractions (0.01 = 1%); each entry is
// multiplied by 100 and clamped to [0, 100]. Non-numeric entries map to 0.
func ParsePrices(raw models.StringOrList) []float64 {
	if len(raw) == 0 {
		return []float64{}
	}

	prices := decodeStringArray(raw)
	out := make([]float64, 0, len(prices))
	for _, price := range prices {
		value, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
		if err != nil {
			out = append(out, 0)
			continue
		}

		scaled := value * 100
		if scaled < 0 {
			scaled = 0
		}
		if scaled > 100 {
			scaled = 100
		}
		out = append(out, scaled)
	}
	return out
}

// ParseTokenIDs decodes raw clob token ids. Same decoder chain as labels but
// without whitespace trimming semantics mattering; kept separate for intent.
func ParseTokenIDs(raw models.StringOrList) []string {
	if len(raw) == 0 {
		return nil
	}
	return decodeStringArray(raw)
}
