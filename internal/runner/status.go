package runner

// Status classifies the outcome of one job execution.
type Status string

const (
	// StatusPass means the job's subprocess exited zero.
	StatusPass Status = "PASS"
	// StatusFail means the job's subprocess exited non-zero.
	StatusFail Status = "FAIL"
	// StatusTimeout means the job exceeded its configured wall-clock limit
	// and was killed.
	StatusTimeout Status = "TIMEOUT"
	// StatusError means the job could not be executed at all (missing
	// runtime scripts, spawn failure).
	StatusError Status = "ERROR"
)
