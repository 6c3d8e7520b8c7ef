package catalog

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

type Question struct {
	ID      string   `json:"id"`
	ExamID  string   `json:"exam_id,omitempty"`
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}

type Exam struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	DurationMinutes   int     `json:"duration_minutes"`
	NumberOfQuestions int     `json:"number_of_questions"`
	PassingScore      float64 `json:"passing_score,omitempty"`

	// Populated on bulk create; GetExam/ListExams return metadata only.
	Questions []Question `json:"questions,omitempty"`

	CreatedAt int64 `json:"created_at,omitempty"`
}
