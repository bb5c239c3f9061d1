package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	p := Parse("type:Fire ability:Flash-Fire move:flare-blitz tier:OU spe>100 big chomp")
	assert.Equal(t, "fire", p.Type)
	assert.Equal(t, "flashfire", p.Ability)
	assert.Equal(t, "flareblitz", p.Move)
	assert.Equal(t, "ou", p.Tier)
	require.Contains(t, p.StatFilters, "spe")
	assert.Equal(t, StatFilter{Stat: "spe", Operator: ">", Threshold: 100}, p.StatFilters["spe"])
	assert.Equal(t, "big chomp", p.FreeText)
}

func TestParseStatAliases(t *testing.T) {
	p := Parse("speed>=120 attack<50 defense<=80")
	require.Len(t, p.StatFilters, 3)
	assert.Equal(t, ">=", p.StatFilters["spe"].Operator)
	assert.Equal(t, "<", p.StatFilters["atk"].Operator)
	assert.Equal(t, "<=", p.StatFilters["def"].Operator)
}

func TestMalformedStatFallsThroughToFreeText(t *testing.T) {
	tests := []string{"spe>fast", "hp=100", "spe>", "strength>100"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			p := Parse(input)
			assert.Empty(t, p.StatFilters)
			assert.Equal(t, input, p.FreeText)
		})
	}
}

func TestStatFilterBoundaries(t *testing.T) {
	gt := StatFilter{Stat: "spe", Operator: ">", Threshold: 100}
	gte := StatFilter{Stat: "spe", Operator: ">=", Threshold: 100}
	assert.False(t, gt.Matches(100))
	assert.True(t, gt.Matches(101))
	assert.True(t, gte.Matches(100))
	assert.False(t, gte.Matches(99))
}

func TestEmptyPredicate(t *testing.T) {
	assert.True(t, Parse("").Empty())
	assert.True(t, Parse("   ").Empty())
	assert.False(t, Parse("pika").Empty())
}

func TestFreeTextPreservesOrder(t *testing.T) {
	p := Parse("iron valiant type:fairy")
	assert.Equal(t, "iron valiant", p.FreeText)
	assert.Equal(t, "fairy", p.Type)
}
