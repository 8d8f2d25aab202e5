package api

type KPIInfo struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Model        string  `json:"model"`
	Observations int     `json:"observations"`
	LastPeriod   string  `json:"last_period"`
	RMSE         float64 `json:"rmse"`
}
