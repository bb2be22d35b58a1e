package imagegen

// JobStatus is the upstream job state reported by the polling endpoint.
// Pending is the only non-terminal state; the three failure variants carry a
// definitive verdict and are never retried.
type JobStatus string

const (
	StatusPending          JobStatus = "Pending"
	StatusReady            JobStatus = "Ready"
	StatusError            JobStatus = "Error"
	StatusRequestModerated JobStatus = "Request Moderated"
	StatusContentModerated JobStatus = "Content Moderated"
)

// Terminal reports whether no further status change will occur for the job.
func (s JobStatus) Terminal() bool {
	return s != StatusPending
}

// Job is the poll handle returned by a successful submission. It is owned by
// the poll loop until a terminal state is reached, then discarded.
type Job struct {
	ID         string
	PollingURL string
}

// PollResult is one decoded answer from the polling endpoint. SampleURL is a
// short-lived signed URL to the generated asset, set only for StatusReady.
type PollResult struct {
	Status    JobStatus
	SampleURL string
}
