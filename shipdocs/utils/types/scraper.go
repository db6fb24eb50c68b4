package types

type ScraperStartResponse struct {
	RunID  string `json:"runId"`
	Status string `json:"status"`
}

// ScraperNeverRun is the sentinel returned by the status endpoint
// before any run record exists.
type ScraperNeverRun struct {
	Status string `json:"status"`
}
