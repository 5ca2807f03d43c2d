package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kapitulo/kapitulo/pkg/money"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		current money.Amount
		target  money.Amount
		want    float64
	}{
		{"zero target", money.FromMajor(500), 0, 0},
		{"halfway", money.FromMajor(50), money.FromMajor(100), 50},
		{"overfunded clamps to 100", money.FromMajor(150), money.FromMajor(100), 100},
		{"negative current clamps to 0", money.FromMajor(-10), money.FromMajor(100), 0},
		{"untouched", 0, money.FromMajor(100), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Progress(tt.current, tt.target), 0.0001)
		})
	}
}

func TestActivityJSONCarriesProgress(t *testing.T) {
	activity := Activity{
		Name:          "Scholarship Drive",
		TargetAmount:  money.FromMajor(1000),
		CurrentAmount: money.FromMajor(250),
		Status:        ActivityStatusActive,
		StartDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(activity)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	require.InDelta(t, 25, out["progress"], 0.0001)
	require.Equal(t, "250.00", out["currentAmount"])
}
