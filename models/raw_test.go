package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringOrListDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"real array", `["Yes","No"]`, []string{"Yes", "No"}},
		{"numeric array", `[0.5, 0.5]`, []string{"0.5", "0.5"}},
		{"bare json string kept whole", `"[\"Yes\",\"No\"]"`, []string{`["Yes","No"]`}},
		{"empty string", `""`, nil},
		{"null literal string", `"null"`, nil},
		{"null", `null`, nil},
		{"object is tolerated as empty", `{"a":1}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringOrList
			err := json.Unmarshal([]byte(tt.input), &got)
			require.NoError(t, err)
			assert.Equal(t, StringOrList(tt.want), got)
		})
	}
}

func TestFlexFloatDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"number", `123.45`, 123.45},
		{"quoted number", `"123.45"`, 123.45},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexFloat
			err := json.Unmarshal([]byte(tt.input), &got)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Float64(), 1e-9)
		})
	}
}

func TestRawMarketDecoding(t *testing.T) {
	payload := `{
		"id": "m1",
		"question": "Will it rain?",
		"outcomes": "[\"Yes\",\"No\"]",
		"outcomePrices": ["0.85","0.15"],
		"volume": "1200.50",
		"active": true,
		"closed": false,
		"groupItemTitle": "Over 2.5"
	}`

	var m RawMarket
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, StringOrList{`["Yes","No"]`}, m.Outcomes)
	assert.Equal(t, StringOrList{"0.85", "0.15"}, m.OutcomePrices)
	assert.InDelta(t, 1200.50, m.Volume.Float64(), 1e-9)
	assert.True(t, m.IsGroupItem())
}

func TestRawMarketIsGroupItem(t *testing.T) {
	m := RawMarket{}
	assert.False(t, m.IsGroupItem())

	m.GroupItemTitle = "Lakers -3.5"
	assert.True(t, m.IsGroupItem())
}
