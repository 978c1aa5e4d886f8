package handlers

import (
	"github.com/evelynagreer/survey-vote/backend/internal/logger"
	"github.com/evelynagreer/survey-vote/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth   *AuthHandler
	Survey *SurveyHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(auth *service.AuthService, surveys *service.SurveyService, results *service.ResultService, log *logger.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(auth, log),
		Survey: NewSurveyHandler(surveys, results, log),
	}
}
