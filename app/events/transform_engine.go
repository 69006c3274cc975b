package events

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/polyfeed/polyfeed/internal/formatter"
	"github.com/polyfeed/polyfeed/internal/logger"
	"github.com/polyfeed/polyfeed/models"
)

// transformEngine implements the TransformEngine interface. It is pure data
// transformation: no I/O, no shared state, safe to call concurrently for
// independent inputs.
type transformEngine struct {
	config  *Config
	builder *outcomeBuilder
	logger  logger.Logger
}

// NewTransformEngine creates a new transform engine
func NewTransformEngine(config *Config, log logger.Logger) TransformEngine {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &transformEngine{
		config:  config,
		builder: newOutcomeBuilder(config),
		logger:  log,
	}
}

// TransformBatch groups a raw batch by event id and transforms each grouped
// event, dropping events that fail individually. The result is sorted by
// 24-hour volume descending. A nil batch is the one failure the engine does
// not self-heal: there is nothing left to salvage.
func (e *transformEngine) TransformBatch(rawEvents []models.RawEvent) ([]models.Event, error) {
	if rawEvents == nil {
		return nil, models.NewTransformError(models.CodeBatchFailure, "event batch is missing", nil)
	}

	grouped := GroupEventsByID(rawEvents)
	out := make([]models.Event, 0, len(grouped))
	for i := range grouped {
		event, err := e.TransformEvent(&grouped[i])
		if err != nil {
			e.logger.Error(err, map[string]interface{}{
				"eventId": grouped[i].ID,
				"stage":   "transform_event",
			})
			continue
		}
		out = append(out, *event)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Volume24Hr > out[b].Volume24Hr
	})
	return out, nil
}

// TransformEvent converts one raw event into its canonical form, aggregating
// outcomes across its markets.
func (e *transformEngine) TransformEvent(raw *models.RawEvent) (*models.Event, error) {
	if raw == nil || raw.ID == "" {
		return nil, models.NewTransformError(models.CodeEventTransformFailure, "event record has no id", nil)
	}

	markets := e.transformMarkets(raw)

	event := &models.Event{
		ID:          raw.ID,
		Title:       raw.Title,
		Slug:        raw.Slug,
		Description: raw.Description,
		Competitive: raw.Competitive.Float64(),
		Active:      raw.Active,
		Closed:      raw.Closed,
		Archived:    raw.Archived,
		Markets:     markets,
		Tags:        transformTags(raw.Tags),
		StartDate:   raw.StartDate,
		EndDate:     raw.EndDate,
		UpdatedAt:   raw.UpdatedAt,
	}

	for i := range markets {
		if markets[i].IsGroupItem {
			event.HasGroupItems = true
			break
		}
	}

	event.IsResolved = raw.Closed || (len(markets) > 0 && allSettled(markets))
	event.Volume, event.Volume24Hr, event.Liquidity = e.aggregateTotals(raw, markets)

	activeCount := 0
	for i := range markets {
		if markets[i].IsTrading() {
			activeCount++
		}
	}

	if !raw.Closed && activeCount > 0 {
		outcomes := e.aggregateOutcomes(markets)
		event.GroupedOutcomes = &outcomes
	} else if best := bestRemainingMarket(markets); best != nil {
		outcomes := e.outcomesForMarket(best)
		if event.IsResolved && !event.HasGroupItems {
			outcomes = collapseResolvedBinary(outcomes)
		}
		event.GroupedOutcomes = &outcomes
	}

	if event.GroupedOutcomes != nil {
		n := len(*event.GroupedOutcomes)
		event.IsBinaryOutcome = n > 0 && n <= 2
		event.IsMultiOutcome = n > 2
	}
	return event, nil
}

// transformMarkets filters the raw markets to those worth keeping (active or
// closed, not archived) and transforms each, dropping individual failures so
// one bad record never takes down the event. Markets are sorted by volume
// descending.
func (e *transformEngine) transformMarkets(raw *models.RawEvent) []models.Market {
	markets := make([]models.Market, 0, len(raw.Markets))
	for i := range raw.Markets {
		rm := &raw.Markets[i]
		if rm.Archived || (!rm.Active && !rm.Closed) {
			continue
		}
		market, err := e.TransformMarket(rm)
		if err != nil {
			e.logger.Error(err, map[string]interface{}{
				"eventId":  raw.ID,
				"marketId": rm.ID,
				"stage":    "transform_market",
			})
			continue
		}
		markets = append(markets, *market)
	}

	sort.SliceStable(markets, func(a, b int) bool {
		return markets[a].Volume > markets[b].Volume
	})
	return markets
}

// TransformMarket maps one raw market record to its canonical form. The
// input is never mutated. Structured outcomes are built through an ordered
// list of strategies, each tried until one yields a non-empty result.
func (e *transformEngine) TransformMarket(raw *models.RawMarket) (*models.Market, error) {
	if raw == nil || raw.ID == "" {
		return nil, models.NewTransformError(models.CodeMarketTransformFailure, "market record has no id", nil)
	}

	strategies := []func(*models.RawMarket) []models.Outcome{
		e.builder.Build,
		e.buildFromReparsedLegacy,
	}

	var outcomes []models.Outcome
	for _, strategy := range strategies {
		outcomes = strategy(raw)
		if len(outcomes) > 0 {
			break
		}
	}

	return &models.Market{
		ID:                    raw.ID,
		Question:              raw.Question,
		Slug:                  raw.Slug,
		ConditionID:           raw.ConditionID,
		Volume:                raw.Volume.Float64(),
		Volume24Hr:            raw.Volume24Hr.Float64(),
		Volume1Wk:             raw.Volume1Wk.Float64(),
		Volume1Mo:             raw.Volume1Mo.Float64(),
		Liquidity:             raw.Liquidity.Float64(),
		Active:                raw.Active,
		Closed:                raw.Closed,
		Archived:              raw.Archived,
		StructuredOutcomes:    outcomes,
		Outcomes:              ParseLabels(raw.Outcomes),
		OutcomePrices:         decodeStringArray(raw.OutcomePrices),
		ClobTokenIDs:          ParseTokenIDs(raw.ClobTokenIDs),
		IsGroupItem:           raw.IsGroupItem(),
		GroupItemTitle:        raw.GroupItemTitle,
		GroupItemThreshold:    raw.GroupItemThreshold.Float64(),
		Icon:                  raw.Icon,
		ClosedTime:            raw.ClosedTime,
		ResolvedBy:            raw.ResolvedBy,
		UMAResolutionStatus:   raw.UMAResolutionStatus,
		AutomaticallyResolved: raw.AutomaticallyResolved,
		UpdatedAt:             raw.UpdatedAt,
	}, nil
}

// buildFromReparsedLegacy retries the outcome builder after unwrapping one
// extra encoding level. Some upstream records arrive with the legacy fields
// JSON-encoded twice; the first build sees them as opaque strings and yields
// nothing.
func (e *transformEngine) buildFromReparsedLegacy(raw *models.RawMarket) []models.Outcome {
	reparsed := *raw
	reparsed.Outcomes = decodeStringArray(raw.Outcomes)
	reparsed.OutcomePrices = decodeStringArray(raw.OutcomePrices)
	reparsed.ClobTokenIDs = decodeStringArray(raw.ClobTokenIDs)
	return e.builder.Build(&reparsed)
}

// aggregateOutcomes flattens every actively-trading market into one combined
// outcome list. Group-item markets contribute exactly one outcome labelled by
// their group title; plain markets contribute all of their structured
// outcomes. This uniform flattening is what lets a live event's moneyline,
// spread and totals markets surface side by side. The list is sorted by
// probability descending and re-checked against market liveness.
func (e *transformEngine) aggregateOutcomes(markets []models.Market) []models.Outcome {
	flattened := make([]models.Outcome, 0, len(markets))
	for i := range markets {
		m := &markets[i]
		if !m.IsTrading() {
			continue
		}
		if m.IsGroupItem {
			if outcome, ok := e.groupItemOutcome(m); ok {
				flattened = append(flattened, outcome)
			}
			continue
		}
		for _, outcome := range m.StructuredOutcomes {
			outcome.MarketID = m.ID
			outcome.MarketQuestion = m.Question
			flattened = append(flattened, outcome)
		}
	}

	sort.SliceStable(flattened, func(a, b int) bool {
		return flattened[a].Probability > flattened[b].Probability
	})

	// An outcome can carry stale flags when the feed closed its market
	// between fetch and transform; drop those here.
	kept := make([]models.Outcome, 0, len(flattened))
	for _, outcome := range flattened {
		if outcome.Active && !outcome.Closed {
			kept = append(kept, outcome)
		}
	}
	return kept
}

// groupItemOutcome collapses a group-item market into the single outcome it
// represents (e.g. one point-spread line). The market's lone structured
// outcome is preferred; otherwise the Yes side is decoded from the legacy
// price fields. The displayed probability is the line's own price, not the
// within-market normalized value, so sibling lines read as 40/35/25 rather
// than 100 each.
func (e *transformEngine) groupItemOutcome(m *models.Market) (models.Outcome, bool) {
	var source *models.Outcome
	if len(m.StructuredOutcomes) == 1 {
		source = &m.StructuredOutcomes[0]
	} else {
		for i := range m.StructuredOutcomes {
			if strings.EqualFold(m.StructuredOutcomes[i].Label, "Yes") {
				source = &m.StructuredOutcomes[i]
				break
			}
		}
	}

	if source != nil {
		outcome := *source
		outcome.Label = m.GroupItemTitle
		outcome.MarketID = m.ID
		outcome.MarketQuestion = m.Question
		if price, err := strconv.ParseFloat(outcome.Price, 64); err == nil {
			outcome.Probability = int(math.Round(price))
		}
		return outcome, true
	}

	// Yes-price fallback from the legacy fields.
	prices := ParsePrices(models.StringOrList(m.OutcomePrices))
	if len(prices) == 0 {
		return models.Outcome{}, false
	}
	yesIndex := 0
	for i, label := range m.Outcomes {
		if strings.EqualFold(label, "Yes") {
			yesIndex = i
			break
		}
	}
	if yesIndex >= len(prices) {
		yesIndex = 0
	}

	price := prices[yesIndex]
	return models.Outcome{
		Label:          m.GroupItemTitle,
		ShortLabel:     formatter.ShortLabel(m.GroupItemTitle),
		Price:          formatter.Price(price),
		Probability:    int(math.Round(price)),
		Volume:         m.Volume,
		Icon:           m.Icon,
		ConditionID:    m.ConditionID,
		MarketID:       m.ID,
		MarketQuestion: m.Question,
		Active:         m.Active,
		Closed:         m.Closed,
	}, true
}

// outcomesForMarket returns a market's structured outcomes, rebuilding them
// from the legacy fields when the structured list is empty.
func (e *transformEngine) outcomesForMarket(m *models.Market) []models.Outcome {
	if len(m.StructuredOutcomes) > 0 {
		return append([]models.Outcome(nil), m.StructuredOutcomes...)
	}

	rebuilt := models.RawMarket{
		ID:            m.ID,
		Question:      m.Question,
		Outcomes:      models.StringOrList(m.Outcomes),
		OutcomePrices: models.StringOrList(m.OutcomePrices),
		ClobTokenIDs:  models.StringOrList(m.ClobTokenIDs),
		Volume:        models.FlexFloat(m.Volume),
		Icon:          m.Icon,
		ConditionID:   m.ConditionID,
		Active:        m.Active,
		Closed:        m.Closed,
	}
	return e.builder.Build(&rebuilt)
}

// aggregateTotals sums volume and liquidity across the constituent markets,
// preferring the event-level aggregate whenever the upstream provides one.
func (e *transformEngine) aggregateTotals(raw *models.RawEvent, markets []models.Market) (volume, volume24Hr, liquidity float64) {
	for i := range markets {
		volume += markets[i].Volume
		volume24Hr += markets[i].Volume24Hr
		liquidity += markets[i].Liquidity
	}
	if v := raw.Volume.Float64(); v > 0 {
		volume = v
	}
	if v := raw.Volume24Hr.Float64(); v > 0 {
		volume24Hr = v
	}
	if v := raw.Liquidity.Float64(); v > 0 {
		liquidity = v
	}
	return volume, volume24Hr, liquidity
}

// bestRemainingMarket picks the market with the highest liquidity, breaking
// ties on volume. Returns nil when there are no markets.
func bestRemainingMarket(markets []models.Market) *models.Market {
	var best *models.Market
	for i := range markets {
		m := &markets[i]
		if best == nil ||
			m.Liquidity > best.Liquidity ||
			(m.Liquidity == best.Liquidity && m.Volume > best.Volume) {
			best = m
		}
	}
	return best
}

// collapseResolvedBinary reduces a resolved yes/no outcome pair to just the
// winning side; resolved simple questions display only how they resolved.
// Multi-outcome sets and pairs without a detected winner are left alone for
// post-hoc display.
func collapseResolvedBinary(outcomes []models.Outcome) []models.Outcome {
	if len(outcomes) != 2 {
		return outcomes
	}
	labels := map[string]bool{
		strings.ToLower(outcomes[0].Label): true,
		strings.ToLower(outcomes[1].Label): true,
	}
	if !labels["yes"] || !labels["no"] {
		return outcomes
	}

	for _, outcome := range outcomes {
		if outcome.IsWinner {
			return []models.Outcome{outcome}
		}
	}
	return outcomes
}

func allSettled(markets []models.Market) bool {
	for i := range markets {
		if markets[i].IsTrading() {
			return false
		}
	}
	return true
}

func transformTags(raw []models.RawTag) []models.Tag {
	if len(raw) == 0 {
		return nil
	}
	tags := make([]models.Tag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, models.Tag{ID: t.ID, Label: t.Label, Slug: t.Slug})
	}
	return tags
}
