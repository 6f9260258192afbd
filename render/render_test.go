package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absmach/fedwatch/render"
	"github.com/absmach/fedwatch/snapshot"
)

func TestStatusSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag      string
		expected render.Severity
	}{
		{snapshot.StatusCompleted, render.SeveritySuccess},
		{snapshot.StatusTraining, render.SeverityInfo},
		{snapshot.StatusError, render.SeverityError},
		{"idle", render.SeverityWarning},
		{"", render.SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, render.StatusSeverity(tt.tag))
		})
	}
}

func TestBanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   snapshot.Status
		expected string
	}{
		{
			name:     "training appends rounded progress",
			status:   snapshot.Status{Status: snapshot.StatusTraining, Message: "Training round 3 of 10", Progress: 42.4},
			expected: "Training round 3 of 10 (42%)",
		},
		{
			name:     "training rounds half up",
			status:   snapshot.Status{Status: snapshot.StatusTraining, Message: "Training", Progress: 66.5},
			expected: "Training (67%)",
		},
		{
			name:     "completed carries message only",
			status:   snapshot.Status{Status: snapshot.StatusCompleted, Message: "Training completed", Progress: 100},
			expected: "Training completed",
		},
		{
			name:     "error carries message only",
			status:   snapshot.Status{Status: snapshot.StatusError, Message: "Round 4 failed", Progress: 40},
			expected: "Round 4 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, render.Banner(tt.status))
		})
	}
}

func TestNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.9500", render.Number(snapshot.Float(0.95), 4))
	assert.Equal(t, "0.8800", render.Number(snapshot.Float(0.88), 4))
	assert.Equal(t, "0.000010", render.Number(snapshot.Float(1e-5), 6))
	assert.Equal(t, "N/A", render.Number(nil, 4))
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "97.5%", render.Percent(snapshot.Float(0.975), 1))
	assert.Equal(t, "0.0%", render.Percent(snapshot.Float(0), 1))
	assert.Equal(t, "N/A", render.Percent(nil, 1))
}

func TestSignedPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+2.3%", render.SignedPercent(snapshot.Float(2.3), 1))
	assert.Equal(t, "-1.2%", render.SignedPercent(snapshot.Float(-1.2), 1))
	assert.Equal(t, "+0.0%", render.SignedPercent(snapshot.Float(0), 1))
	assert.Equal(t, "N/A", render.SignedPercent(nil, 1))
}

func TestCards(t *testing.T) {
	t.Parallel()

	m := &snapshot.Metrics{
		FederatedModel: snapshot.Scores{
			AUC:    snapshot.Float(0.95),
			Recall: snapshot.Float(0.88),
		},
		Improvement: snapshot.Scores{
			AUC: snapshot.Float(2.3),
		},
		CommunicationCostMB: snapshot.Float(12.5),
		AttackResults: snapshot.AttackResults{
			OverallDefenseRate: snapshot.Float(0.975),
		},
	}

	cards := render.Cards(m)
	require.Len(t, cards, 4)

	assert.Equal(t, render.Card{Title: "Model AUC", Value: "0.9500", Delta: "+2.3%"}, cards[0])
	assert.Equal(t, render.Card{Title: "Model Recall", Value: "0.8800", Delta: "N/A"}, cards[1])
	assert.Equal(t, render.Card{Title: "Communication Cost", Value: "12.50 MB"}, cards[2])
	assert.Equal(t, render.Card{Title: "Attack Defense Rate", Value: "97.5%"}, cards[3])
}

func TestCardsNilMetrics(t *testing.T) {
	t.Parallel()

	cards := render.Cards(nil)
	require.Len(t, cards, 4)
	for _, c := range cards {
		assert.Equal(t, render.Placeholder, c.Value)
		assert.Empty(t, c.Delta)
	}
}

func TestPrivacyPanel(t *testing.T) {
	t.Parallel()

	m := &snapshot.Metrics{
		PrivacyMetrics: snapshot.Privacy{
			Epsilon:         snapshot.Float(8.0),
			Delta:           snapshot.Float(1e-5),
			NoiseMultiplier: snapshot.Float(1.1),
		},
		AttackResults: snapshot.AttackResults{
			MembershipInferenceDefenseRate: snapshot.Float(0.98),
		},
	}

	fields := render.PrivacyPanel(m)
	require.Len(t, fields, 6)

	assert.Equal(t, render.Field{Label: "Epsilon", Value: "8.0000"}, fields[0])
	assert.Equal(t, render.Field{Label: "Delta", Value: "0.000010"}, fields[1])
	assert.Equal(t, render.Field{Label: "Noise Multiplier", Value: "1.1000"}, fields[2])
	assert.Equal(t, render.Field{Label: "L2 Clip Norm", Value: "N/A"}, fields[3])
	assert.Equal(t, render.Field{Label: "Membership Inference Defense", Value: "98.0%"}, fields[4])
	assert.Equal(t, render.Field{Label: "Model Inversion Defense", Value: "N/A"}, fields[5])

	assert.Nil(t, render.PrivacyPanel(nil))
}
