package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/satyam/medicare-backend/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if b.email != "" {
		email := b.email
		user.Email = &email
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginResponse matches the API login response
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// BuildAndAuthenticate creates a user in the database, logs in via the API,
// and returns the user and bearer token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"username": b.username,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.Server.URL+"/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login for test user failed with status %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return user, loginResp.Token
}

// MedicationBuilder creates test medications with a builder pattern
type MedicationBuilder struct {
	userID       uuid.UUID
	name         string
	dosage       string
	schedule     string
	capsulesLeft int
}

// NewMedicationBuilder creates a new MedicationBuilder with default values
func NewMedicationBuilder(userID uuid.UUID) *MedicationBuilder {
	return &MedicationBuilder{
		userID:       userID,
		name:         fmt.Sprintf("med_%s", uuid.New().String()[:8]),
		dosage:       "500mg",
		schedule:     "after meals",
		capsulesLeft: 30,
	}
}

// WithName sets the medication name
func (b *MedicationBuilder) WithName(name string) *MedicationBuilder {
	b.name = name
	return b
}

// WithCapsulesLeft sets the remaining capsule count
func (b *MedicationBuilder) WithCapsulesLeft(n int) *MedicationBuilder {
	b.capsulesLeft = n
	return b
}

// Build creates the medication in the database
func (b *MedicationBuilder) Build(t *testing.T, db *gorm.DB) *domain.Medication {
	t.Helper()

	med := &domain.Medication{
		ID:           uuid.New(),
		UserID:       b.userID,
		Name:         b.name,
		Dosage:       b.dosage,
		Schedule:     b.schedule,
		CapsulesLeft: b.capsulesLeft,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(med).Error; err != nil {
		t.Fatalf("failed to create medication: %v", err)
	}

	return med
}
