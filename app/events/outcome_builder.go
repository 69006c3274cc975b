package events

import (
	"github.com/polyfeed/polyfeed/internal/formatter"
	"github.com/polyfeed/polyfeed/models"
)

// outcomeBuilder converts one raw market's labels, prices and volume into
// structured Outcome records.
type outcomeBuilder struct {
	config *Config
}

func newOutcomeBuilder(config *Config) *outcomeBuilder {
	return &outcomeBuilder{config: config}
}

// Build returns the structured outcomes for a raw market, or an empty slice
// when no labels can be decoded; the caller falls back to other strategies.
//
// When labels exist but prices are missing the upstream has simply not
// priced the market yet (common for brand-new markets), so uniform
// placeholder outcomes are produced instead of failing.
func (b *outcomeBuilder) Build(m *models.RawMarket) []models.Outcome {
	labels := ParseLabels(m.Outcomes)
	if len(labels) == 0 {
		return []models.Outcome{}
	}

	prices := ParsePrices(m.OutcomePrices)
	if len(prices) == 0 {
		return b.buildUniform(m, labels)
	}

	// Length mismatches happen when the upstream drops trailing prices;
	// missing entries count as zero, extras are ignored.
	if len(prices) < len(labels) {
		padded := make([]float64, len(labels))
		copy(padded, prices)
		prices = padded
	} else if len(prices) > len(labels) {
		prices = prices[:len(labels)]
	}

	tokens := ParseTokenIDs(m.ClobTokenIDs)
	probabilities := NormalizeProbabilities(prices)
	winnerIndex := b.detectWinner(m, prices)
	volumes := apportionVolume(m.Volume.Float64(), prices)

	outcomes := make([]models.Outcome, 0, len(labels))
	for i, label := range labels {
		outcome := models.Outcome{
			Label:       label,
			ShortLabel:  formatter.ShortLabel(label),
			Price:       formatter.Price(prices[i]),
			Probability: probabilities[i],
			Volume:      volumes[i],
			Icon:        m.Icon,
			ConditionID: m.ConditionID,
			Active:      m.Active,
			Closed:      m.Closed,
		}
		if i < len(tokens) {
			outcome.ClobTokenID = tokens[i]
		}
		if i == winnerIndex {
			outcome.IsWinner = true
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// buildUniform produces equal-probability placeholder outcomes for a market
// with labels but no price data yet.
func (b *outcomeBuilder) buildUniform(m *models.RawMarket, labels []string) []models.Outcome {
	ones := make([]float64, len(labels))
	for i := range ones {
		ones[i] = 1
	}
	probabilities := NormalizeProbabilities(ones)
	volumes := apportionVolume(m.Volume.Float64(), ones)
	share := 100 / float64(len(labels))

	outcomes := make([]models.Outcome, 0, len(labels))
	for i, label := range labels {
		outcomes = append(outcomes, models.Outcome{
			Label:       label,
			ShortLabel:  formatter.ShortLabel(label),
			Price:       formatter.Price(share),
			Probability: probabilities[i],
			Volume:      volumes[i],
			Icon:        m.Icon,
			ConditionID: m.ConditionID,
			Active:      m.Active,
			Closed:      m.Closed,
		})
	}
	return outcomes
}

// detectWinner returns the index of the winning outcome for a resolved
// market, or -1 when no winner should be marked. Only closed markets are
// evaluated. Resolution prices are noisy, so an outcome only counts as the
// winner when its price clears the confidence threshold; an ambiguous
// resolution is left unmarked rather than guessed. Ties break on the
// first-seen index.
func (b *outcomeBuilder) detectWinner(m *models.RawMarket, prices []float64) int {
	if !m.Closed || len(prices) == 0 {
		return -1
	}

	maxIndex := 0
	for i, p := range prices {
		if p > prices[maxIndex] {
			maxIndex = i
		}
	}

	if prices[maxIndex] < b.config.WinnerConfidenceThreshold {
		return -1
	}
	return maxIndex
}

// apportionVolume splits a market's volume across outcomes proportionally to
// their prices, or evenly when all prices are zero.
func apportionVolume(marketVolume float64, prices []float64) []float64 {
	volumes := make([]float64, len(prices))
	if len(prices) == 0 {
		return volumes
	}

	var total float64
	for _, p := range prices {
		if p > 0 {
			total += p
		}
	}

	if total <= 0 {
		share := formatter.Amount(marketVolume / float64(len(prices)))
		for i := range volumes {
			volumes[i] = share
		}
		return volumes
	}

	for i, p := range prices {
		if p < 0 {
			p = 0
		}
		volumes[i] = formatter.Amount(marketVolume * p / total)
	}
	return volumes
}
