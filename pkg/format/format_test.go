package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompactThresholds(t *testing.T) {
	cases := map[float64]string{
		999:           "R$ 999",
		1000:          "R$ 1.0K",
		1_000_000:     "R$ 1.0M",
		1_000_000_000: "R$ 1.0B",
		902_200_000:   "R$ 902.2M",
		676_388_266:   "R$ 676.4M",
		45_500:        "R$ 45.5K",
	}
	for in, want := range cases {
		assert.Equal(t, want, Compact(in), "Compact(%v)", in)
	}
}

func TestCurrencyGroupsWithPeriods(t *testing.T) {
	assert.Equal(t, "R$ 1.075.000", Currency(1075000))
	assert.Equal(t, "R$ 45.000", Currency(45000))
	assert.Equal(t, "R$ 0", Currency(0))
	assert.Equal(t, "R$ 419.800.000", Currency(830400000-410600000))
	assert.Equal(t, "-R$ 1.000", Currency(-1000))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.200", Number(1200))
	assert.Equal(t, "150", Number(150))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "87%", Percentage(87))
	assert.Equal(t, "49.4%", Percentage(49.4))
	assert.Equal(t, "49.4%", PercentageFixed(49.44701, 1))
	assert.Equal(t, "+3.5%", Signed(3.5))
	assert.Equal(t, "-2.3%", Signed(-2.3))
	assert.Equal(t, "+0%", Signed(0))
}

func TestTier(t *testing.T) {
	cases := []struct {
		in   float64
		want Tone
	}{
		{100, ToneSuccess},
		{90, ToneSuccess},
		{89.9, ToneInfo},
		{70, ToneInfo},
		{50, ToneWarning},
		{49, ToneDanger},
		{5, ToneDanger},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Tier(tc.in), "Tier(%v)", tc.in)
	}
	assert.True(t, ToneSuccess.Emphasized())
	assert.False(t, ToneInfo.Emphasized())
	assert.Equal(t, "warning", ToneWarning.String())
}

func TestClock(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "09:05", Clock(ts))
}
