package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
	"github.com/stratera/pos-api/pkg/jwt"
	"github.com/stratera/pos-api/pkg/logger"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

// Config for token issuance.
type Config struct {
	JWTSecret         string
	JWTIssuer         string
	ExpirationMinutes int
}

// UseCase handles logins. Failed attempts are counted per account; hitting
// the limit locks the account for a cooldown window.
type UseCase struct {
	users    repository.UserRepository
	activity repository.ActivityLogRepository
	cfg      Config
	log      *logger.Logger
}

// NewUseCase builds the auth use case.
func NewUseCase(users repository.UserRepository, activity repository.ActivityLogRepository, cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{users: users, activity: activity, cfg: cfg, log: log}
}

// Login verifies credentials and returns a signed token. Unknown usernames
// and wrong passwords both map to ErrUnauthorized so the response does not
// leak which half failed.
func (uc *UseCase) Login(ctx context.Context, in *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, domain.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.registerFailure(user, now)
		return nil, domain.ErrUnauthorized
	}

	// Successful login resets the failure counter.
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	if err := uc.users.Update(user); err != nil {
		uc.log.Warn().Err(err).Str("user", user.Username).Msg("login bookkeeping update failed")
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.Username, user.Role, uc.cfg.JWTIssuer, uc.cfg.ExpirationMinutes)
	if err != nil {
		return nil, err
	}

	uc.recordActivity(user.ID, entity.ActivityLogin, "User logged in")

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
			IsActive: user.IsActive,
		},
	}, nil
}

// Logout only records the audit entry; tokens stay valid until expiry.
func (uc *UseCase) Logout(ctx context.Context, userID string) {
	uc.recordActivity(userID, entity.ActivityLogout, "User logged out")
}

func (uc *UseCase) registerFailure(user *entity.User, now time.Time) {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= maxFailedAttempts {
		until := now.Add(lockoutDuration)
		user.LockedUntil = &until
		user.FailedLoginAttempts = 0
		uc.log.Warn().Str("user", user.Username).Time("until", until).Msg("account locked after repeated failures")
	}
	if err := uc.users.Update(user); err != nil {
		uc.log.Warn().Err(err).Str("user", user.Username).Msg("failed-attempt update failed")
	}
}

func (uc *UseCase) recordActivity(userID, activityType, description string) {
	err := uc.activity.Create(&entity.ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		Timestamp:    time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("activity", activityType).Msg("activity log write failed")
	}
}
