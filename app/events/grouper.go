package events

import (
	"time"

	"github.com/polyfeed/polyfeed/models"
)

// GroupEventsByID deduplicates a raw batch by event id. The same event shows
// up across paginated and polled fetches with different market subsets (new
// markets get added to a live game mid-fetch), so duplicates are merged
// rather than dropped: markets union by market id, tags union by tag id, and
// the record with the newer updatedAt contributes the scalar fields. When
// neither side carries a usable timestamp the first-seen record wins.
// First-seen order of event ids is preserved.
func GroupEventsByID(rawEvents []models.RawEvent) []models.RawEvent {
	grouped := make([]models.RawEvent, 0, len(rawEvents))
	index := make(map[string]int, len(rawEvents))

	for _, event := range rawEvents {
		pos, seen := index[event.ID]
		if !seen {
			index[event.ID] = len(grouped)
			grouped = append(grouped, event)
			continue
		}
		grouped[pos] = mergeRawEvents(grouped[pos], event)
	}
	return grouped
}

func mergeRawEvents(base, incoming models.RawEvent) models.RawEvent {
	var merged models.RawEvent
	if newerThan(incoming.UpdatedAt, base.UpdatedAt) {
		merged = incoming
	} else {
		merged = base
	}

	merged.Markets = mergeRawMarkets(base.Markets, incoming.Markets)
	merged.Tags = mergeRawTags(base.Tags, incoming.Tags)
	return merged
}

func mergeRawMarkets(base, incoming []models.RawMarket) []models.RawMarket {
	merged := make([]models.RawMarket, 0, len(base)+len(incoming))
	index := make(map[string]int, len(base))

	for _, m := range base {
		index[m.ID] = len(merged)
		merged = append(merged, m)
	}
	for _, m := range incoming {
		pos, seen := index[m.ID]
		if !seen {
			index[m.ID] = len(merged)
			merged = append(merged, m)
			continue
		}
		if newerThan(m.UpdatedAt, merged[pos].UpdatedAt) {
			merged[pos] = m
		}
	}
	return merged
}

func mergeRawTags(base, incoming []models.RawTag) []models.RawTag {
	merged := make([]models.RawTag, 0, len(base)+len(incoming))
	seen := make(map[string]bool, len(base))

	for _, t := range base {
		seen[t.ID] = true
		merged = append(merged, t)
	}
	for _, t := range incoming {
		if !seen[t.ID] {
			seen[t.ID] = true
			merged = append(merged, t)
		}
	}
	return merged
}

// newerThan reports whether candidate is a parseable timestamp strictly
// later than current. Unparseable timestamps never win.
func newerThan(candidate, current string) bool {
	candidateTime, err := time.Parse(time.RFC3339, candidate)
	if err != nil {
		return false
	}
	currentTime, err := time.Parse(time.RFC3339, current)
	if err != nil {
		return true
	}
	return candidateTime.After(currentTime)
}
