package events

import (
	"sort"

	"github.com/polyfeed/polyfeed/models"
)

// MergeEvents folds a freshly-transformed poll result into the previously
// cached event list. Events union by id with fresh data overwriting stale;
// within a known event, markets union by market id the same way. Event-level
// derived fields (grouped outcomes, totals, flags) follow the fresh record,
// since they were computed from the newer snapshot. Merging the same fresh
// batch twice yields the same result as merging it once. Neither input is
// mutated. The merged list is re-sorted by 24-hour volume descending.
func MergeEvents(base, fresh []models.Event) []models.Event {
	merged := make([]models.Event, 0, len(base)+len(fresh))
	index := make(map[string]int, len(base))

	for _, event := range base {
		index[event.ID] = len(merged)
		merged = append(merged, event)
	}

	for _, event := range fresh {
		pos, seen := index[event.ID]
		if !seen {
			index[event.ID] = len(merged)
			merged = append(merged, event)
			continue
		}
		merged[pos] = mergeEvent(merged[pos], event)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Volume24Hr > merged[b].Volume24Hr
	})
	return merged
}

func mergeEvent(base, fresh models.Event) models.Event {
	merged := fresh
	merged.Markets = mergeMarkets(base.Markets, fresh.Markets)
	if fresh.GroupedOutcomes == nil {
		// The fresh snapshot never attempted aggregation (an injected feed
		// returning a thinner record); keep the derived view we already have.
		merged.GroupedOutcomes = base.GroupedOutcomes
		merged.IsBinaryOutcome = base.IsBinaryOutcome
		merged.IsMultiOutcome = base.IsMultiOutcome
	}
	return merged
}

func mergeMarkets(base, fresh []models.Market) []models.Market {
	merged := make([]models.Market, 0, len(base)+len(fresh))
	index := make(map[string]int, len(base))

	for _, m := range base {
		index[m.ID] = len(merged)
		merged = append(merged, m)
	}
	for _, m := range fresh {
		pos, seen := index[m.ID]
		if !seen {
			index[m.ID] = len(merged)
			merged = append(merged, m)
			continue
		}
		merged[pos] = m
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Volume > merged[b].Volume
	})
	return merged
}
