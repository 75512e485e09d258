package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ivoicehq/ivoice-server/internal/models"
	"github.com/ivoicehq/ivoice-server/pkg/crypto"
	apperrors "github.com/ivoicehq/ivoice-server/pkg/errors"
	"github.com/ivoicehq/ivoice-server/pkg/mail"
)

const defaultOTPExpiry = 10 * time.Minute

// AuthOption customises the AuthService.
type AuthOption func(*AuthService)

// WithClock injects a custom time source.
func WithClock(clock func() time.Time) AuthOption {
	return func(s *AuthService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithOTPGenerator overrides the one-time code generator.
func WithOTPGenerator(fn func() (string, error)) AuthOption {
	return func(s *AuthService) {
		if fn != nil {
			s.generateOTP = fn
		}
	}
}

// WithOTPExpiry overrides the one-time code lifetime.
func WithOTPExpiry(d time.Duration) AuthOption {
	return func(s *AuthService) {
		if d > 0 {
			s.otpExpiry = d
		}
	}
}

// AuthService orchestrates signup, OTP verification, login, and the verified
// user directory. All collaborators are injected; there is no process-wide
// state.
type AuthService struct {
	db          *gorm.DB
	mailer      mail.Mailer
	otpExpiry   time.Duration
	now         func() time.Time
	generateOTP func() (string, error)
}

// NewAuthService constructs the auth workflow with the provided dependencies.
// A nil mailer skips outbound email, which keeps tests and local development
// relay-free.
func NewAuthService(db *gorm.DB, mailer mail.Mailer, opts ...AuthOption) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}

	service := &AuthService{
		db:          db,
		mailer:      mailer,
		otpExpiry:   defaultOTPExpiry,
		now:         time.Now,
		generateOTP: crypto.GenerateOTP,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// SignupInput describes the fields accepted at registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Avatar   string
}

// Signup registers an unverified account and dispatches the OTP email.
// The created record is not rolled back when the email send fails.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" {
		return "", apperrors.NewBadRequest("username is required")
	}
	if email == "" {
		return "", apperrors.NewBadRequest("email is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return "", apperrors.NewBadRequest("password is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("auth service: check existing email: %w", err)
	}
	if count > 0 {
		return "", apperrors.ErrEmailTaken
	}

	hashed, err := crypto.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("auth service: hash password: %w", err)
	}

	otp, err := s.generateOTP()
	if err != nil {
		return "", fmt.Errorf("auth service: generate otp: %w", err)
	}

	expiresAt := s.now().Add(s.otpExpiry)
	user := models.User{
		Username:     username,
		Email:        email,
		Password:     hashed,
		Avatar:       input.Avatar,
		IsVerified:   false,
		OTP:          &otp,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Concurrent signups race on the lookup above; the store's unique
		// index is the arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.ErrEmailTaken
		}
		return "", fmt.Errorf("auth service: create user: %w", err)
	}

	if s.mailer != nil {
		body, err := mail.VerificationEmail(username, otp)
		if err != nil {
			return "", fmt.Errorf("auth service: %w", err)
		}
		message := mail.Message{
			To:      []string{email},
			Subject: mail.VerificationSubject,
			HTML:    body,
		}
		if mailErr := s.mailer.Send(ctx, message); mailErr != nil && !errors.Is(mailErr, mail.ErrSMTPDisabled) {
			return "", fmt.Errorf("auth service: send otp email: %w", mailErr)
		}
	}

	return user.Email, nil
}

// VerifyOTP checks the submitted code and marks the account verified. The
// stored code and its expiry are cleared in the same update.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	email = normalizeEmail(email)

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("auth service: find user: %w", err)
	}

	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	if user.OTP == nil || user.OTPExpiresAt == nil {
		return apperrors.ErrInvalidOTP
	}
	if *user.OTP != otp || s.now().After(*user.OTPExpiresAt) {
		return apperrors.ErrInvalidOTP
	}

	updates := map[string]any{
		"is_verified":    true,
		"otp":            nil,
		"otp_expires_at": nil,
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("auth service: mark verified: %w", err)
	}

	return nil
}

// Login checks credentials and returns the account on success. Unknown email
// and wrong password produce the same error so neither field leaks.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: find user: %w", err)
	}

	if !user.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// ListUsers returns every verified user except the caller, projected to the
// public profile shape in the store's natural order.
func (s *AuthService) ListUsers(ctx context.Context, excludeID string) ([]models.Profile, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("is_verified = ?", true).
		Where("id <> ?", excludeID).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("auth service: list users: %w", err)
	}

	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// PurgeExpiredUnverified deletes unverified accounts whose code expired
// before the cutoff, returning the number of removed records.
func (s *AuthService) PurgeExpiredUnverified(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("is_verified = ?", false).
		Where("otp_expires_at IS NOT NULL").
		Where("otp_expires_at < ?", cutoff).
		Delete(&models.User{})
	if result.Error != nil {
		return 0, fmt.Errorf("auth service: purge unverified: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
