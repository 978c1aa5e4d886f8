package models

import "time"

type Survey struct {
	ID        int            `gorm:"primaryKey" json:"id"`
	Question  string         `gorm:"not null" json:"question"`
	Answers   []AnswerOption `gorm:"foreignKey:SurveyID" json:"answers"`
	CreatedAt time.Time      `json:"date"`
}

// AnswerOption is one possible answer of a survey. Position preserves the
// order the survey was created with.
type AnswerOption struct {
	ID       int    `gorm:"primaryKey" json:"-"`
	SurveyID int    `gorm:"index" json:"-"`
	Answer   string `gorm:"not null" json:"answer"`
	Image    string `json:"image,omitempty"`
	Position int    `json:"-"`
}

type CreateSurveyRequest struct {
	Question string                `json:"question"`
	Answers  []CreateAnswerRequest `json:"answers"`
}

type CreateAnswerRequest struct {
	Answer string `json:"answer"`
	Image  string `json:"image"`
}
