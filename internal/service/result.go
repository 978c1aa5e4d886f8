package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
	"github.com/evelynagreer/survey-vote/backend/internal/repository"
)

// ErrUnknownAnswer is returned by SaveVote when the chosen answer is not one
// of the survey's options.
var ErrUnknownAnswer = errors.New("answer is not an option of this survey")

// ResultService records votes and computes per-answer vote distributions.
type ResultService struct {
	surveys repository.SurveyStore
	answers repository.SurveyAnswerStore
}

func NewResultService(surveys repository.SurveyStore, answers repository.SurveyAnswerStore) *ResultService {
	return &ResultService{surveys: surveys, answers: answers}
}

// SaveVote records one account's answer for a survey, replacing any earlier
// vote by the same account, and returns the recomputed result. It returns
// (nil, nil) when the survey does not exist.
func (s *ResultService) SaveVote(ctx context.Context, accountID, surveyID int, answer string) (*models.SurveyResult, error) {
	survey, err := s.surveys.LoadByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, nil
	}

	valid := false
	for _, opt := range survey.Answers {
		if opt.Answer == answer {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownAnswer
	}

	vote := &models.SurveyAnswer{
		AccountID: accountID,
		SurveyID:  surveyID,
		Answer:    answer,
		Date:      time.Now().UTC(),
	}
	if err := s.answers.Save(ctx, vote); err != nil {
		return nil, err
	}

	return s.aggregate(ctx, survey)
}

// ResultForSurvey computes the current vote distribution for a survey, or
// (nil, nil) when the survey does not exist. A survey with no votes yields a
// result with every option at count 0 and percent 0.
func (s *ResultService) ResultForSurvey(ctx context.Context, surveyID int) (*models.SurveyResult, error) {
	survey, err := s.surveys.LoadByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, nil
	}
	return s.aggregate(ctx, survey)
}

func (s *ResultService) aggregate(ctx context.Context, survey *models.Survey) (*models.SurveyResult, error) {
	votes, err := s.answers.LoadBySurveyID(ctx, survey.ID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(survey.Answers))
	for _, v := range votes {
		counts[v.Answer]++
	}
	total := len(votes)

	// Every option appears in the result, including ones nobody voted for.
	answers := make([]models.AnswerResult, 0, len(survey.Answers))
	for _, opt := range survey.Answers {
		count := counts[opt.Answer]
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(count) * 100 / float64(total)))
		}
		answers = append(answers, models.AnswerResult{
			Answer:  opt.Answer,
			Image:   opt.Image,
			Count:   count,
			Percent: percent,
		})
	}

	// Highest percentage first; ties keep the survey's original answer order.
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Percent > answers[j].Percent
	})

	return &models.SurveyResult{
		SurveyID: survey.ID,
		Question: survey.Question,
		Date:     survey.CreatedAt,
		Answers:  answers,
	}, nil
}
