package store

import "time"

// ModelRecord is the persisted form of a fitted smoothing snapshot.
type ModelRecord struct {
	KPI          string    `json:"kpi"`
	Kind         string    `json:"kind"`
	Alpha        float64   `json:"alpha"`
	Beta         float64   `json:"beta"`
	Gamma        float64   `json:"gamma,omitempty"`
	Level        float64   `json:"level"`
	Trend        float64   `json:"trend"`
	Seasonals    []float64 `json:"seasonals,omitempty"`
	Cycle        int       `json:"cycle,omitempty"`
	Observations int       `json:"observations"`
	LastPeriod   string    `json:"last_period"`
	RMSE         float64   `json:"rmse"`
	TrainedAt    time.Time `json:"trained_at"`
}

// ModelBankDocument is the on disk layout of the model bank file.
type ModelBankDocument struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Models      []ModelRecord `json:"models"`
}
