package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
)

// SurveyAnswerStore is the persistence boundary for votes. Save must be an
// atomic upsert keyed on (account_id, survey_id) so a voter is never counted
// twice.
type SurveyAnswerStore interface {
	Save(ctx context.Context, vote *models.SurveyAnswer) error
	LoadBySurveyID(ctx context.Context, surveyID int) ([]models.SurveyAnswer, error)
}

type SurveyAnswerRepository struct {
	db *gorm.DB
}

func NewSurveyAnswerRepository(db *gorm.DB) *SurveyAnswerRepository {
	return &SurveyAnswerRepository{db: db}
}

func (r *SurveyAnswerRepository) Save(ctx context.Context, vote *models.SurveyAnswer) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "survey_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "date"}),
	}).Create(vote).Error
	if err != nil {
		return fmt.Errorf("save survey answer: %w", err)
	}
	return nil
}

func (r *SurveyAnswerRepository) LoadBySurveyID(ctx context.Context, surveyID int) ([]models.SurveyAnswer, error) {
	var votes []models.SurveyAnswer
	err := r.db.WithContext(ctx).Where("survey_id = ?", surveyID).Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("load survey answers: %w", err)
	}
	return votes, nil
}
