package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/satyam/medicare-backend/internal/api"
	"github.com/satyam/medicare-backend/internal/config"
	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/llm"
	"github.com/satyam/medicare-backend/internal/metrics"
	"github.com/satyam/medicare-backend/internal/repository"
	repoPostgres "github.com/satyam/medicare-backend/internal/repository/postgres"
	"github.com/satyam/medicare-backend/internal/service"
	"github.com/satyam/medicare-backend/internal/session"
	"github.com/satyam/medicare-backend/internal/token"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_medicare"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Medication{},
		&domain.PeriodCycle{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"period_cycles",
		"medications",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
		TriageTimeout:      2 * time.Second, // fast upstream timeout for tests
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Sessions *session.Registry
	Tokens   *token.Manager
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies. The
// generative model is replaced by the given fake; pass NewFakeLLM() when the
// test never reaches the model.
func NewTestServer(t *testing.T, llmClient llm.Client) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	sessions := session.NewRegistry()
	collector := metrics.NewCollector(func() float64 { return float64(sessions.Len()) })
	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)

	services := service.NewServices(repos, tokens, llmClient, sessions, collector, cfg)
	router := api.NewRouter(services, collector)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{
		Server:   srv,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Sessions: sessions,
		Tokens:   tokens,
		Config:   cfg,
	}
}

// FakeLLM is an llm.Client double: it records prompts and returns a canned
// reply or error.
type FakeLLM struct {
	Reply string
	Err   error
	Calls []llm.Message
	Delay time.Duration
}

func NewFakeLLM() *FakeLLM {
	return &FakeLLM{Reply: "fake model reply"}
}

func (f *FakeLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	f.Calls = append(f.Calls, messages...)
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}
