package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/repository"
	"github.com/lankacraft/marketapi/internal/session"
	"github.com/lankacraft/marketapi/pkg/errors"
)

// mockOTPCode is the fixed code issued by the mock OTP flow. Real issuance
// and delivery sit behind a backend this service deliberately stands in for.
const mockOTPCode = "1234"

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	MobileNumber string
	Language     domain.Language
	DefaultMode  domain.Mode
}

type AuthService struct {
	repos  *repository.Repositories
	store  session.Store
	delay  time.Duration
	logger *zap.Logger
}

// NewAuthService creates a new auth service. The delay simulates upstream
// latency the way the original mock backend did; pass 0 to disable.
func NewAuthService(repos *repository.Repositories, store session.Store, delay time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		repos:  repos,
		store:  store,
		delay:  delay,
		logger: logger,
	}
}

// Login looks up the user by email, fabricating a default account when none
// exists. The password is accepted as-is: there is no real credential check
// behind this boundary yet.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	s.simulateLatency(ctx)

	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); !ok {
			return nil, "", err
		}
		user = fabricateUser(email)
		if err := s.repos.Users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.persist(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register always creates a fresh account with currentMode set from the
// chosen default mode.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	s.simulateLatency(ctx)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		MobileNumber: input.MobileNumber,
		Language:     input.Language,
		DefaultMode:  input.DefaultMode,
		CurrentMode:  input.DefaultMode,
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.persist(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginWithGoogle signs in the fixed fabricated Google account.
func (s *AuthService) LoginWithGoogle(ctx context.Context) (*domain.User, string, error) {
	s.simulateLatency(ctx)

	user, err := s.repos.Users.GetByEmail(ctx, "google.user@gmail.com")
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); !ok {
			return nil, "", err
		}
		user = fabricateUser("google.user@gmail.com")
		if err := s.repos.Users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.persist(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SendOTP returns the fixed mock code instead of delivering an SMS.
func (s *AuthService) SendOTP(ctx context.Context, mobileNumber string) (string, error) {
	s.simulateLatency(ctx)
	return mockOTPCode, nil
}

// VerifyOTP accepts any 4-character code. Explicitly not a real verification.
func (s *AuthService) VerifyOTP(ctx context.Context, mobileNumber, otp string) (bool, error) {
	s.simulateLatency(ctx)
	return len(otp) == 4, nil
}

// SwitchMode flips the user's current mode without re-authentication and
// re-persists the session with a fresh token.
func (s *AuthService) SwitchMode(ctx context.Context, userID uuid.UUID, mode domain.Mode) (*domain.User, string, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	user.CurrentMode = mode
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.persist(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CompleteOnboarding marks seller onboarding done. The flag only ever flips
// from false to true.
func (s *AuthService) CompleteOnboarding(ctx context.Context, userID uuid.UUID) (*domain.User, string, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	user.HasCompletedOnboarding = true
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.persist(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// StoredUser returns the locally persisted user, or nil when either the
// token or the user record is missing.
func (s *AuthService) StoredUser(ctx context.Context) *domain.User {
	user, _ := s.store.Load()
	return user
}

// Logout deletes the server session and clears the device record.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.repos.Sessions.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("Failed to clear session store", zap.Error(err))
	}
	return nil
}

// persist writes the user through the repository, mints a fresh token,
// registers its hash, and mirrors both into the device store. A new token
// is minted on every write.
func (s *AuthService) persist(ctx context.Context, user *domain.User) (string, error) {
	token := uuid.NewString()

	hash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		return "", err
	}

	err = s.repos.Sessions.ReplaceForUser(ctx, &domain.Session{
		UserID:    user.ID,
		TokenHash: string(hash),
	})
	if err != nil {
		return "", err
	}

	if err := s.store.Save(user, token); err != nil {
		s.logger.Warn("Failed to write session store", zap.Error(err))
	}

	return token, nil
}

func (s *AuthService) simulateLatency(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
}

// fabricateUser builds the default demo account for an email that has never
// been seen before.
func fabricateUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    "Oshada",
		LastName:     "Bandaranayake",
		MobileNumber: "+94771234567",
		Language:     domain.LanguageEnglish,
		DefaultMode:  domain.ModeBuyer,
		CurrentMode:  domain.ModeBuyer,
	}
}
