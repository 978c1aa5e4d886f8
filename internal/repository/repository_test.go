package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evelynagreer/survey-vote/backend/internal/models"
)

// setupTestDB spins up a throwaway postgres container. Gated behind
// INTEGRATION_TESTS because it needs a container runtime.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run repository integration tests")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("survey_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.Survey{},
		&models.AnswerOption{},
		&models.SurveyAnswer{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &models.Account{Name: "Ana", Email: "ana@test.com", Password: "digest"}
	if err := repo.Add(ctx, account); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if account.ID == 0 {
		t.Fatal("Expected an id after insert")
	}

	loaded, err := repo.LoadByEmail(ctx, "ana@test.com")
	if err != nil {
		t.Fatalf("LoadByEmail failed: %v", err)
	}
	if loaded == nil || loaded.ID != account.ID {
		t.Fatalf("Expected inserted account, got %+v", loaded)
	}

	missing, err := repo.LoadByEmail(ctx, "nobody@test.com")
	if err != nil {
		t.Fatalf("LoadByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v", missing)
	}

	if err := repo.UpdateAccessToken(ctx, account.ID, "tok-1"); err != nil {
		t.Fatalf("UpdateAccessToken failed: %v", err)
	}

	byToken, err := repo.LoadByToken(ctx, "tok-1", "")
	if err != nil {
		t.Fatalf("LoadByToken failed: %v", err)
	}
	if byToken == nil || byToken.ID != account.ID {
		t.Fatalf("Expected account by token, got %+v", byToken)
	}

	// Role filter: the account has no role, so an admin-scoped lookup misses.
	asAdmin, err := repo.LoadByToken(ctx, "tok-1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("LoadByToken failed: %v", err)
	}
	if asAdmin != nil {
		t.Errorf("Expected nil for role-scoped lookup, got %+v", asAdmin)
	}
}

func TestSurveyRepositoryPreservesAnswerOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSurveyRepository(db)
	ctx := context.Background()

	survey := &models.Survey{
		Question: "Which one?",
		Answers: []models.AnswerOption{
			{Answer: "Z"},
			{Answer: "A"},
			{Answer: "M"},
		},
	}
	if err := repo.Add(ctx, survey); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	loaded, err := repo.LoadByID(ctx, survey.ID)
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected survey to load")
	}

	want := []string{"Z", "A", "M"}
	for i, opt := range loaded.Answers {
		if opt.Answer != want[i] {
			t.Fatalf("Expected creation order %v, got %+v", want, loaded.Answers)
		}
	}

	missing, err := repo.LoadByID(ctx, 99999)
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown survey, got %+v", missing)
	}
}

func TestSurveyAnswerRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSurveyAnswerRepository(db)
	ctx := context.Background()

	first := &models.SurveyAnswer{AccountID: 1, SurveyID: 1, Answer: "A", Date: time.Now().UTC()}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := &models.SurveyAnswer{AccountID: 1, SurveyID: 1, Answer: "B", Date: time.Now().UTC()}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	votes, err := repo.LoadBySurveyID(ctx, 1)
	if err != nil {
		t.Fatalf("LoadBySurveyID failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected one vote after re-vote, got %d", len(votes))
	}
	if votes[0].Answer != "B" {
		t.Errorf("Expected latest answer 'B', got %q", votes[0].Answer)
	}

	// A different account votes independently.
	other := &models.SurveyAnswer{AccountID: 2, SurveyID: 1, Answer: "A", Date: time.Now().UTC()}
	if err := repo.Save(ctx, other); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	votes, err = repo.LoadBySurveyID(ctx, 1)
	if err != nil {
		t.Fatalf("LoadBySurveyID failed: %v", err)
	}
	if len(votes) != 2 {
		t.Errorf("Expected two votes from two accounts, got %d", len(votes))
	}
}
