package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/evelynagreer/survey-vote/backend/internal/logger"
	"github.com/evelynagreer/survey-vote/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

// Mock AccountStore
type mockAccountStore struct {
	addFunc               func(ctx context.Context, account *models.Account) error
	loadByEmailFunc       func(ctx context.Context, email string) (*models.Account, error)
	loadByTokenFunc       func(ctx context.Context, token, role string) (*models.Account, error)
	updateAccessTokenFunc func(ctx context.Context, id int, token string) error
}

func (m *mockAccountStore) Add(ctx context.Context, account *models.Account) error {
	if m.addFunc != nil {
		return m.addFunc(ctx, account)
	}
	return errors.New("not implemented")
}

func (m *mockAccountStore) LoadByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.loadByEmailFunc != nil {
		return m.loadByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountStore) LoadByToken(ctx context.Context, token, role string) (*models.Account, error) {
	if m.loadByTokenFunc != nil {
		return m.loadByTokenFunc(ctx, token, role)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountStore) UpdateAccessToken(ctx context.Context, id int, token string) error {
	if m.updateAccessTokenFunc != nil {
		return m.updateAccessTokenFunc(ctx, id, token)
	}
	return errors.New("not implemented")
}

// Mock SurveyStore
type mockSurveyStore struct {
	addFunc      func(ctx context.Context, survey *models.Survey) error
	loadAllFunc  func(ctx context.Context) ([]models.Survey, error)
	loadByIDFunc func(ctx context.Context, id int) (*models.Survey, error)
}

func (m *mockSurveyStore) Add(ctx context.Context, survey *models.Survey) error {
	if m.addFunc != nil {
		return m.addFunc(ctx, survey)
	}
	return errors.New("not implemented")
}

func (m *mockSurveyStore) LoadAll(ctx context.Context) ([]models.Survey, error) {
	if m.loadAllFunc != nil {
		return m.loadAllFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSurveyStore) LoadByID(ctx context.Context, id int) (*models.Survey, error) {
	if m.loadByIDFunc != nil {
		return m.loadByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

// Mock SurveyAnswerStore with in-memory upsert semantics
type mockAnswerStore struct {
	votes []models.SurveyAnswer
}

func (m *mockAnswerStore) Save(ctx context.Context, vote *models.SurveyAnswer) error {
	for i, v := range m.votes {
		if v.AccountID == vote.AccountID && v.SurveyID == vote.SurveyID {
			m.votes[i] = *vote
			return nil
		}
	}
	m.votes = append(m.votes, *vote)
	return nil
}

func (m *mockAnswerStore) LoadBySurveyID(ctx context.Context, surveyID int) ([]models.SurveyAnswer, error) {
	var out []models.SurveyAnswer
	for _, v := range m.votes {
		if v.SurveyID == surveyID {
			out = append(out, v)
		}
	}
	return out, nil
}

// Mock hasher and codec
type mockHasher struct{}

func (mockHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (mockHasher) Compare(plaintext, digest string) bool { return digest == "hashed:"+plaintext }

type mockCodec struct{}

func (mockCodec) Encrypt(accountID int) (string, error) { return "signed-token", nil }
func (mockCodec) Decrypt(token string) (int, error) {
	if token == "signed-token" {
		return 1, nil
	}
	return 0, errors.New("invalid access token")
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

// fakeAuthenticated stands in for the auth middleware in handler tests.
func fakeAuthenticated(accountID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("account_id", accountID)
		c.Set("account", &models.Account{ID: accountID, Name: "Test", Email: "t@t.com"})
		c.Next()
	}
}
