package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
)

// SurveyStore is the persistence boundary for survey definitions. Surveys are
// immutable after creation.
type SurveyStore interface {
	Add(ctx context.Context, survey *models.Survey) error
	LoadAll(ctx context.Context) ([]models.Survey, error)
	LoadByID(ctx context.Context, id int) (*models.Survey, error)
}

type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

func (r *SurveyRepository) Add(ctx context.Context, survey *models.Survey) error {
	for i := range survey.Answers {
		survey.Answers[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(survey).Error; err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	return nil
}

func (r *SurveyRepository) LoadAll(ctx context.Context) ([]models.Survey, error) {
	var surveys []models.Survey
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, fmt.Errorf("load surveys: %w", err)
	}
	return surveys, nil
}

func (r *SurveyRepository) LoadByID(ctx context.Context, id int) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&survey, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load survey by id: %w", err)
	}
	return &survey, nil
}
