package attempt

import "time"

// Attempt is one user's timed run through a sampled subset of an
// exam's questions. EndedAt and Score stay nil until finalization;
// IsValid starts true and is only ever downgraded.
type Attempt struct {
	ID        string     `json:"id"`
	ExamID    string     `json:"exam_id"`
	UserID    string     `json:"user_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	IsValid   bool       `json:"is_valid"`
	Score     *float64   `json:"score,omitempty"`
}

// Finalized reports whether End has already run for this attempt.
func (a Attempt) Finalized() bool { return a.EndedAt != nil }

// OptionView and QuestionView are the taker-facing projections served
// by Start: no is_correct leaks through them.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Options []OptionView `json:"options"`
}

type ExamSnapshot struct {
	ExamID          string         `json:"exam_id"`
	Title           string         `json:"title"`
	DurationMinutes int            `json:"duration_minutes"`
	Questions       []QuestionView `json:"questions"`
}

type StartResult struct {
	AttemptID string       `json:"attempt_id"`
	Exam      ExamSnapshot `json:"exam"`
}

type EndResult struct {
	Score   float64 `json:"score"`
	IsValid bool    `json:"is_valid"`
}
