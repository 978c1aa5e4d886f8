package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evelynagreer/survey-vote/backend/internal/logger"
	"github.com/evelynagreer/survey-vote/backend/internal/models"
	"github.com/evelynagreer/survey-vote/backend/internal/service"
)

type SurveyHandler struct {
	surveys *service.SurveyService
	results *service.ResultService
	log     *logger.Logger
}

func NewSurveyHandler(surveys *service.SurveyService, results *service.ResultService, log *logger.Logger) *SurveyHandler {
	return &SurveyHandler{surveys: surveys, results: results, log: log}
}

// CreateSurvey creates a new survey (PROTECTED - admin only)
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var input struct {
		Question string `json:"question" binding:"required"`
		Answers  []struct {
			Answer string `json:"answer" binding:"required"`
			Image  string `json:"image"`
		} `json:"answers" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]models.CreateAnswerRequest, 0, len(input.Answers))
	for _, a := range input.Answers {
		answers = append(answers, models.CreateAnswerRequest{Answer: a.Answer, Image: a.Image})
	}

	if err := h.surveys.AddSurvey(c.Request.Context(), input.Question, answers); err != nil {
		h.log.WithField("error", err.Error()).Error("create survey failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create survey"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSurveys lists all surveys (PROTECTED)
func (h *SurveyHandler) GetSurveys(c *gin.Context) {
	surveys, err := h.surveys.LoadSurveys(c.Request.Context())
	if err != nil {
		h.log.WithField("error", err.Error()).Error("load surveys failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch surveys"})
		return
	}

	if len(surveys) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, surveys)
}

// SaveResult records the authenticated account's vote and returns the
// up-to-date result (PROTECTED)
func (h *SurveyHandler) SaveResult(c *gin.Context) {
	surveyID, err := strconv.Atoi(c.Param("surveyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey id"})
		return
	}

	var input struct {
		Answer string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID := c.GetInt("account_id")

	result, err := h.results.SaveVote(c.Request.Context(), accountID, surveyID, input.Answer)
	if errors.Is(err, service.ErrUnknownAnswer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid answer"})
		return
	}
	if err != nil {
		h.log.WithField("error", err.Error()).Error("save vote failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
		return
	}
	if result == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid survey id"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResult returns the current vote distribution for a survey (PROTECTED)
func (h *SurveyHandler) GetResult(c *gin.Context) {
	surveyID, err := strconv.Atoi(c.Param("surveyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey id"})
		return
	}

	result, err := h.results.ResultForSurvey(c.Request.Context(), surveyID)
	if err != nil {
		h.log.WithField("error", err.Error()).Error("load result failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch result"})
		return
	}
	if result == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid survey id"})
		return
	}

	c.JSON(http.StatusOK, result)
}
