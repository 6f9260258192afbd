package snapshot

import "time"

const (
	StatusCompleted = "completed"
	StatusTraining  = "training"
	StatusError     = "error"
)

// Scores holds evaluation scores of the federated model. Absent fields
// decode to nil and render as placeholders downstream.
type Scores struct {
	AUC    *float64 `json:"auc,omitempty"`
	Recall *float64 `json:"recall,omitempty"`
}

// Privacy holds the differential-privacy parameters reported by the
// coordinator. The watcher displays them, it never computes them.
type Privacy struct {
	Epsilon         *float64 `json:"epsilon,omitempty"`
	Delta           *float64 `json:"delta,omitempty"`
	NoiseMultiplier *float64 `json:"noise_multiplier,omitempty"`
	L2NormClip      *float64 `json:"l2_norm_clip,omitempty"`
}

type AttackResults struct {
	OverallDefenseRate             *float64 `json:"overall_defense_rate,omitempty"`
	MembershipInferenceDefenseRate *float64 `json:"membership_inference_defense_rate,omitempty"`
	ModelInversionDefenseScore     *float64 `json:"model_inversion_defense_score,omitempty"`
}

type Metrics struct {
	FederatedModel      Scores        `json:"federated_model"`
	Improvement         Scores        `json:"improvement,omitempty"`
	PrivacyMetrics      Privacy       `json:"privacy_metrics"`
	CommunicationCostMB *float64      `json:"communication_cost_mb,omitempty"`
	AttackResults       AttackResults `json:"attack_results,omitempty"`
}

type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	// Progress is a percentage in [0, 100], meaningful only while training.
	Progress float64 `json:"progress"`
}

// View is the reconciled presentation state owned by the watcher. Loading
// is true exactly until the first fetch cycle completes, successful or not.
type View struct {
	Metrics   *Metrics  `json:"metrics,omitempty"`
	Status    *Status   `json:"status,omitempty"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record is one fetch cycle's outcome as persisted in history.
type Record struct {
	ID        string    `json:"id"`
	Metrics   *Metrics  `json:"metrics,omitempty"`
	Status    *Status   `json:"status,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryPage struct {
	Offset  uint64   `json:"offset"`
	Limit   uint64   `json:"limit"`
	Total   uint64   `json:"total"`
	Records []Record `json:"records"`
}

// Float is a convenience constructor for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
