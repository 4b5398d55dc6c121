package constants

// JobStatus is the canonical status of a batch job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // waiting for a worker
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusDone    JobStatus = "DONE"    // parse result produced
	JobStatusInvalid JobStatus = "INVALID" // parse result produced, validation errors present
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure, no result
)
