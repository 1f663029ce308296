// Package domain defines the business logic for the NeuroMate backend.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Navaneeth-Nair/Neuromate/internal/cache"
)

var (
	// ErrNotFound is returned when a record cannot be located for the caller.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when signing up with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when signin fails for any reason.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("validation failed")
)

// MaxAvatarBytes bounds inline avatar payloads.
const MaxAvatarBytes = 16 << 20

// MinPasswordLength is enforced on signup and password changes.
const MinPasswordLength = 6

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// AccountRepository persists users and profiles.
type AccountRepository interface {
	CreateAccount(ctx context.Context, user User, profile Profile) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate, at time.Time) (*Profile, error)
}

// ActivityRepository persists the six wellness activity streams.
type ActivityRepository interface {
	CreateTask(ctx context.Context, task Task) error
	CompleteTask(ctx context.Context, userID, taskID string, at time.Time) (*Task, error)
	ListTasks(ctx context.Context, userID string, window Range) ([]Task, error)
	CreateMood(ctx context.Context, mood MoodCheckin) error
	ListMoods(ctx context.Context, userID string, window Range) ([]MoodCheckin, error)
	CreateFocusSession(ctx context.Context, session FocusSession) error
	ListFocusSessions(ctx context.Context, userID string, window Range) ([]FocusSession, error)
	CreateJournalEntry(ctx context.Context, entry JournalEntry) error
	ListJournalEntries(ctx context.Context, userID string, window Range) ([]JournalEntry, error)
	CreateRoutine(ctx context.Context, routine Routine) error
	CompleteRoutine(ctx context.Context, userID, routineID string, at time.Time) (*Routine, error)
	ListRoutines(ctx context.Context, userID string, window Range) ([]Routine, error)
	CreateMeditation(ctx context.Context, session MeditationSession) error
	ListMeditations(ctx context.Context, userID string, window Range) ([]MeditationSession, error)
}

// CommunityRepository persists posts.
type CommunityRepository interface {
	CreatePost(ctx context.Context, post Post) error
	ListPosts(ctx context.Context, cursor *Cursor, limit int) ([]Post, *Cursor, error)
	ListPostsByUser(ctx context.Context, userID string) ([]Post, error)
}

// OutreachRepository persists landing page submissions.
type OutreachRepository interface {
	CreateBetaSignup(ctx context.Context, signup BetaSignup) error
	CreateContactMessage(ctx context.Context, message ContactMessage) error
}

// Repository captures every persistence operation the service needs.
type Repository interface {
	AccountRepository
	ActivityRepository
	CommunityRepository
	OutreachRepository
}

// TokenIssuer mints session tokens for authenticated users.
type TokenIssuer interface {
	Issue(subject string, now time.Time) (string, time.Time, error)
}

// Option configures optional Service behaviour.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service orchestrates NeuroMate workflows.
type Service struct {
	repo   Repository
	cache  cache.Invalidator
	tokens TokenIssuer
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, invalidator cache.Invalidator, tokens TokenIssuer, opts ...Option) *Service {
	if invalidator == nil {
		invalidator = cache.NoopInvalidator{}
	}
	s := &Service{
		repo:   repo,
		cache:  invalidator,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignupInput captures a new account request.
type SignupInput struct {
	Email    string
	Password string
	Username string
}

// Signup creates a user, its profile and a session token.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, invalid("email and password are required")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, invalid("password must be at least %d characters", MinPasswordLength)
	}

	existing, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	profile := Profile{
		ID:        user.ID,
		Email:     email,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateAccount(ctx, user, profile); err != nil {
		return nil, err
	}
	return s.session(user, profile)
}

// Signin verifies credentials and returns a fresh session.
func (s *Service) Signin(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &Profile{ID: user.ID, Email: user.Email}
	}
	return s.session(*user, *profile)
}

func (s *Service) session(user User, profile Profile) (*Session, error) {
	if s.tokens == nil {
		return nil, errors.New("token issuer not configured")
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Profile: profile, Token: token, ExpiresAt: expiresAt}, nil
}

// ChangePassword replaces the caller's password hash.
func (s *Service) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return invalid("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// GetProfile fetches the caller's profile.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// UpdateProfile applies the supplied fields to the caller's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	if update.Empty() {
		return nil, invalid("no valid fields to update")
	}
	if update.AvatarURL != nil && len(*update.AvatarURL) > MaxAvatarBytes {
		return nil, invalid("avatar exceeds %d bytes", MaxAvatarBytes)
	}
	if update.Username != nil && strings.TrimSpace(*update.Username) == "" {
		return nil, invalid("username cannot be blank")
	}

	profile, err := s.repo.UpdateProfile(ctx, userID, update, s.now())
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) invalidate(ctx context.Context, userID string) error {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		return fmt.Errorf("cache invalidation: %w", err)
	}
	return nil
}
