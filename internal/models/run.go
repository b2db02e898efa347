package models

import "time"

// RunReport summarizes one full pass of the orchestrator over all
// certificates.
type RunReport struct {
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Scanned       int       `json:"scanned"`        // certificates examined
	Triggered     int       `json:"triggered"`      // thresholds crossed with flag unset
	Dispatched    int       `json:"dispatched"`     // alerts fully delivered (flag set)
	SendFailures  int       `json:"send_failures"`  // triggered alerts with no successful external send
	StoreFailures int       `json:"store_failures"` // failed notification inserts or flag writes
}
