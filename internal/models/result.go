package models

import "time"

// SurveyAnswer tracks one account's chosen answer for one survey. A later
// vote for the same (account, survey) pair replaces the earlier one.
type SurveyAnswer struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	AccountID int       `gorm:"uniqueIndex:idx_account_survey" json:"account_id"`
	SurveyID  int       `gorm:"uniqueIndex:idx_account_survey" json:"survey_id"`
	Answer    string    `gorm:"not null" json:"answer"`
	Date      time.Time `json:"date"`
}

// SurveyResult is derived from the recorded votes on demand; it is never
// stored.
type SurveyResult struct {
	SurveyID int            `json:"survey_id"`
	Question string         `json:"question"`
	Date     time.Time      `json:"date"`
	Answers  []AnswerResult `json:"answers"`
}

type AnswerResult struct {
	Answer  string `json:"answer"`
	Image   string `json:"image,omitempty"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

type SaveResultRequest struct {
	Answer string `json:"answer"`
}
