package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssessor() *Assessor {
	return NewAssessor(DefaultLimits(), DefaultSeasonalFactors(), NewSeededHistoryGenerator(2024))
}

func TestAssess_SuppliedHistory(t *testing.T) {
	fixed := time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	r := Reading{
		Zone:       "Quito-Centro",
		Month:      1,
		ObservedAt: time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC),
		Pollutants: Levels{PM25: 5, PM10: 5, NO2: 5, SO2: 5},
		Weather:    Weather{TemperatureC: 14, HumidityPct: 60, WindKmh: 10},
		History:    constantHistory(Levels{PM25: 40, PM10: 10, NO2: 10, SO2: 10}),
	}

	a, err := newTestAssessor().Assess(r)
	require.NoError(t, err)

	assert.Equal(t, "Quito-Centro", a.Zone)
	assert.Equal(t, 1, a.Month)
	assert.Equal(t, HistorySupplied, a.HistorySource)
	assert.Equal(t, r.Pollutants, a.Current)
	assert.InDelta(t, 40.0, a.Baseline[PM25], tolerance)
	assert.InDelta(t, 40.0, a.Forecast[PM25], tolerance)
	assert.InDelta(t, 10.0, a.Forecast[SO2], tolerance)
	assert.Equal(t, AlertEmergency, a.Alert)
	assert.Equal(t, []string{"PM2.5"}, a.Elevated)
	assert.Equal(t, fixed, a.ProcessedAt)
	assert.True(t, strings.HasPrefix(a.ID, "zone-"))

	assert.Equal(t, AlertEmergency, a.Final.AlertLevel)
	assert.Equal(t, a.Forecast, a.Final.Pollutants)
	assert.Equal(t, r.History, a.Final.History)
}

func TestAssess_MultiPollutantScenario(t *testing.T) {
	r := Reading{
		Zone:    "Ambato",
		Month:   6,
		Weather: Weather{WindKmh: 10, HumidityPct: 50},
		History: constantHistory(Levels{PM25: 30, PM10: 60, NO2: 5, SO2: 5}),
	}

	a, err := newTestAssessor().Assess(r)
	require.NoError(t, err)
	assert.Equal(t, AlertEmergency, a.Alert)
	assert.Equal(t, []string{"PM2.5", "PM10"}, a.Elevated)
}

func TestAssess_SynthesizedHistory(t *testing.T) {
	r := Reading{
		Zone:       "Cuenca",
		Month:      4,
		Pollutants: Levels{PM25: 10, PM10: 20, NO2: 30, SO2: 15},
		Weather:    Weather{WindKmh: 5, HumidityPct: 50},
	}

	a, err := newTestAssessor().Assess(r)
	require.NoError(t, err)

	assert.Equal(t, HistorySynthesized, a.HistorySource)
	require.Len(t, a.Final.History, HistoryDays)
	for _, p := range Pollutants() {
		// Recent days are within ±10% and April scales by 0.8.
		assert.InDelta(t, r.Pollutants[p]*0.8, a.Forecast[p], r.Pollutants[p]*0.8*0.1+tolerance)
		assert.InDelta(t, r.Pollutants[p], a.Baseline[p], r.Pollutants[p]*0.3+tolerance)
	}
	assert.Equal(t, AlertNormal, a.Alert)
	assert.Empty(t, r.History, "reading must not be modified")
}

func TestAssess_NoGenerator(t *testing.T) {
	a := NewAssessor(DefaultLimits(), DefaultSeasonalFactors(), nil)
	_, err := a.Assess(Reading{Zone: "Loja", Month: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Loja")
}

func TestAssessor_StagesArePure(t *testing.T) {
	a := newTestAssessor()
	zone := Zone{
		Name:       "Manta",
		Pollutants: Levels{1, 1, 1, 1},
		History:    rampHistory(),
	}

	smoothed := a.Smooth(zone)
	predicted := a.Predict(smoothed, 8)
	final, c := a.Classify(predicted)

	assert.Equal(t, Levels{1, 1, 1, 1}, zone.Pollutants)
	assert.NotEqual(t, smoothed.Pollutants, predicted.Pollutants)
	assert.Equal(t, AlertNormal, smoothed.AlertLevel)
	assert.Equal(t, c.Tier, final.AlertLevel)
	assert.InDelta(t, 7.5, predicted.Pollutants[PM25], tolerance)
}

func TestGenerateID(t *testing.T) {
	at := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	id1 := generateID("Quito", 5, at)
	id2 := generateID("Quito", 5, at)
	assert.Equal(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, "zone-"))

	assert.NotEqual(t, id1, generateID("Quito", 6, at))
	assert.NotEqual(t, id1, generateID("Guayaquil", 5, at))
}
