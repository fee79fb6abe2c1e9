package astronomy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNakshatraCalculator(t *testing.T) {
	nc := NewNakshatraCalculator(newTestEphemerisManager())
	assert.NotNil(t, nc)
	assert.NotNil(t, nc.ephemerisManager)
}

func TestGetNakshatraForDate(t *testing.T) {
	nc := NewNakshatraCalculator(newTestEphemerisManager())
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	info, err := nc.GetNakshatraForDate(ctx, date)

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.Number >= 1 && info.Number <= 27)
	assert.True(t, info.Pada >= 1 && info.Pada <= 4)
	assert.NotEmpty(t, info.Name)
	assert.NotEmpty(t, info.Deity)
	assert.NotEmpty(t, info.PlanetaryLord)
	assert.True(t, info.Duration > 0)
	assert.True(t, info.EndTime.After(info.StartTime))
}

func TestNakshatraData_Completeness(t *testing.T) {
	for i := 1; i <= 27; i++ {
		data, exists := NakshatraData[i]
		assert.True(t, exists, "nakshatra %d should have data", i)
		assert.NotEmpty(t, data.Name)
		assert.NotEmpty(t, data.Deity)
		assert.NotEmpty(t, data.PlanetaryLord)
		assert.NotEmpty(t, data.Symbol)
	}
}
