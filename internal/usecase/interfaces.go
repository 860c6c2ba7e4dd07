package usecase

// JobProgress is pushed to a user's live connections while a background
// removal job is polled.
type JobProgress struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
	ImageURL    string `json:"image_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

type ProgressNotifier interface {
	NotifyJobProgress(userID string, progress JobProgress)
}

type noopNotifier struct{}

func (noopNotifier) NotifyJobProgress(string, JobProgress) {}
