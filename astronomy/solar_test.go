package astronomy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolarCalculator(t *testing.T) {
	sc := NewSolarCalculator(newTestEphemerisManager())
	assert.NotNil(t, sc)
}

func TestGregorianToSolar_Tamil(t *testing.T) {
	sc := NewSolarCalculator(newTestEphemerisManager())
	ctx := context.Background()

	date, err := sc.GregorianToSolar(ctx, 2024, 1, 15, testBangalore, Tamil)

	require.NoError(t, err)
	require.NotNil(t, date)
	assert.True(t, date.Rashi >= 1 && date.Rashi <= 12)
	assert.True(t, date.Day >= 1 && date.Day <= 32)
	assert.Equal(t, "Saka", date.EraName)
	assert.NotEmpty(t, date.MonthName)
}

func TestSolarCalendarTypeString(t *testing.T) {
	assert.Equal(t, "Tamil", Tamil.String())
	assert.Equal(t, "Bengali", Bengali.String())
	assert.Equal(t, "Odia", Odia.String())
	assert.Equal(t, "Malayalam", Malayalam.String())
	assert.Equal(t, "Unknown", SolarCalendarType(99).String())
}

func TestRashiNames_Completeness(t *testing.T) {
	for i := 1; i <= 12; i++ {
		assert.NotEmpty(t, RashiNames[i])
	}
}
