package service

import (
	"context"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
	"github.com/evelynagreer/survey-vote/backend/internal/repository"
)

// SurveyService handles survey creation and listing.
type SurveyService struct {
	surveys repository.SurveyStore
}

func NewSurveyService(surveys repository.SurveyStore) *SurveyService {
	return &SurveyService{surveys: surveys}
}

func (s *SurveyService) AddSurvey(ctx context.Context, question string, answers []models.CreateAnswerRequest) error {
	survey := &models.Survey{Question: question}
	for _, a := range answers {
		survey.Answers = append(survey.Answers, models.AnswerOption{
			Answer: a.Answer,
			Image:  a.Image,
		})
	}
	return s.surveys.Add(ctx, survey)
}

func (s *SurveyService) LoadSurveys(ctx context.Context) ([]models.Survey, error) {
	return s.surveys.LoadAll(ctx)
}
