package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"uclmatch_server/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Only UCL addresses may register.
var uclEmailPattern = regexp.MustCompile(`(?i)^[^\s@]+@ucl\.ac\.uk$`)

// IsValidUCLEmail reports whether email is a UCL address, case-insensitively.
func IsValidUCLEmail(email string) bool {
	return uclEmailPattern.MatchString(email)
}

// AuthService owns registration, sign-in and the session table. Sessions are
// explicit bearer tokens handed to every authenticated call; no ambient
// current-user state lives inside the data services.
type AuthService struct {
	Profiles *UserProfileService

	mu            sync.RWMutex
	sessions      map[string]string // token -> uid
	verifications map[string]string // verification token -> uid
}

func NewAuthService(profiles *UserProfileService) *AuthService {
	return &AuthService{
		Profiles:      profiles,
		sessions:      make(map[string]string),
		verifications: make(map[string]string),
	}
}

// Register creates a minimal profile document (uid, email, name, creation
// time) and fires the email-verification trigger. Non-UCL addresses and
// blank fields are rejected with ErrValidation.
func (as *AuthService) Register(ctx context.Context, name, email, password string) (*models.UserProfile, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	}
	if !IsValidUCLEmail(email) {
		return nil, fmt.Errorf("%w: please use your UCL email", models.ErrValidation)
	}

	existing, err := as.Profiles.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := models.UserProfile{
		UserID:       uuid.NewString(),
		EmailID:      strings.ToLower(email),
		Name:         name,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		PasswordHash: string(hash),
	}

	if err := as.Profiles.Dynamo.PutItem(ctx, models.UsersTable, profile); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	as.sendVerificationEmail(profile)

	return &profile, nil
}

// sendVerificationEmail issues a verification token for the new account.
// Delivery is out of scope; the link is logged for the caller to pick up.
func (as *AuthService) sendVerificationEmail(profile models.UserProfile) {
	token := uuid.NewString()

	as.mu.Lock()
	as.verifications[token] = profile.UserID
	as.mu.Unlock()

	log.Printf("Verification email for %s: /api/auth/verify?token=%s", profile.EmailID, token)
}

// VerifyEmail consumes a verification token and flags the profile verified.
func (as *AuthService) VerifyEmail(ctx context.Context, token string) error {
	as.mu.Lock()
	uid, ok := as.verifications[token]
	if ok {
		delete(as.verifications, token)
	}
	as.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: unknown verification token", models.ErrValidation)
	}

	_, err := as.Profiles.applyUpdate(ctx, uid, map[string]interface{}{"emailVerified": true})
	return err
}

// SignIn checks the credentials and mints a session token.
func (as *AuthService) SignIn(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: please enter the email and the password", models.ErrValidation)
	}

	profile, err := as.Profiles.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if profile == nil {
		return "", nil, models.ErrNotAuthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrNotAuthenticated
	}

	token := uuid.NewString()
	as.mu.Lock()
	as.sessions[token] = profile.UserID
	as.mu.Unlock()

	return token, profile, nil
}

// SignOut drops the session. Unknown tokens are a no-op.
func (as *AuthService) SignOut(token string) {
	as.mu.Lock()
	delete(as.sessions, token)
	as.mu.Unlock()
}

// ResolveSession maps a bearer token to its user id.
func (as *AuthService) ResolveSession(token string) (string, error) {
	if token == "" {
		return "", models.ErrNotAuthenticated
	}

	as.mu.RLock()
	uid, ok := as.sessions[token]
	as.mu.RUnlock()

	if !ok {
		return "", models.ErrNotAuthenticated
	}
	return uid, nil
}
