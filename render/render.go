package render

import (
	"fmt"
	"math"

	"github.com/absmach/fedwatch/snapshot"
)

// Placeholder is rendered wherever the coordinator omitted a numeric field.
const Placeholder = "N/A"

// TrainFirstNotice is shown when a cycle failed before any metrics exist.
const TrainFirstNotice = "No metrics available. Train the model first."

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// StatusSeverity maps a status tag to a banner severity. Unknown tags
// degrade to warning.
func StatusSeverity(tag string) Severity {
	switch tag {
	case snapshot.StatusCompleted:
		return SeveritySuccess
	case snapshot.StatusTraining:
		return SeverityInfo
	case snapshot.StatusError:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Banner renders the status banner text. Progress is appended, rounded to
// a whole percent, only while training.
func Banner(s snapshot.Status) string {
	if s.Status == snapshot.StatusTraining {
		return fmt.Sprintf("%s (%d%%)", s.Message, int(math.Round(s.Progress)))
	}

	return s.Message
}

// Number is a total formatting function over an optional value: a
// fixed-decimal string, or the placeholder when the value is absent.
func Number(v *float64, decimals int) string {
	if v == nil {
		return Placeholder
	}

	return fmt.Sprintf("%.*f", decimals, *v)
}

// Percent renders an optional fraction in [0,1] as a percentage.
func Percent(v *float64, decimals int) string {
	if v == nil {
		return Placeholder
	}

	return fmt.Sprintf("%.*f%%", decimals, *v*100)
}

// SignedPercent renders an optional improvement delta, which the
// coordinator already reports in percentage points.
func SignedPercent(v *float64, decimals int) string {
	if v == nil {
		return Placeholder
	}

	return fmt.Sprintf("%+.*f%%", decimals, *v)
}

// Card is one headline metric tile.
type Card struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// Field is one row of the privacy-protection panel.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Cards builds the four headline metric cards. A nil metrics snapshot
// yields all placeholders.
func Cards(m *snapshot.Metrics) []Card {
	if m == nil {
		return []Card{
			{Title: "Model AUC", Value: Placeholder},
			{Title: "Model Recall", Value: Placeholder},
			{Title: "Communication Cost", Value: Placeholder},
			{Title: "Attack Defense Rate", Value: Placeholder},
		}
	}

	cost := Placeholder
	if m.CommunicationCostMB != nil {
		cost = fmt.Sprintf("%.2f MB", *m.CommunicationCostMB)
	}

	return []Card{
		{
			Title: "Model AUC",
			Value: Number(m.FederatedModel.AUC, 4),
			Delta: SignedPercent(m.Improvement.AUC, 1),
		},
		{
			Title: "Model Recall",
			Value: Number(m.FederatedModel.Recall, 4),
			Delta: SignedPercent(m.Improvement.Recall, 1),
		},
		{
			Title: "Communication Cost",
			Value: cost,
		},
		{
			Title: "Attack Defense Rate",
			Value: Percent(m.AttackResults.OverallDefenseRate, 1),
		},
	}
}

// PrivacyPanel builds the detailed privacy-protection rows.
func PrivacyPanel(m *snapshot.Metrics) []Field {
	if m == nil {
		return nil
	}

	return []Field{
		{Label: "Epsilon", Value: Number(m.PrivacyMetrics.Epsilon, 4)},
		{Label: "Delta", Value: Number(m.PrivacyMetrics.Delta, 6)},
		{Label: "Noise Multiplier", Value: Number(m.PrivacyMetrics.NoiseMultiplier, 4)},
		{Label: "L2 Clip Norm", Value: Number(m.PrivacyMetrics.L2NormClip, 4)},
		{Label: "Membership Inference Defense", Value: Percent(m.AttackResults.MembershipInferenceDefenseRate, 1)},
		{Label: "Model Inversion Defense", Value: Percent(m.AttackResults.ModelInversionDefenseScore, 1)},
	}
}
