package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/domain"
	"github.com/stratera/pos-api/internal/domain/entity"
	"github.com/stratera/pos-api/internal/domain/repository"
	"github.com/stratera/pos-api/pkg/logger"
)

const minPasswordLength = 8

// UserUseCase manages accounts. Admin-only surface; the auth use case handles
// logins.
type UserUseCase struct {
	users    repository.UserRepository
	activity repository.ActivityLogRepository
	log      *logger.Logger
}

// NewUserUseCase builds the use case.
func NewUserUseCase(users repository.UserRepository, activity repository.ActivityLogRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, activity: activity, log: log}
}

func (uc *UserUseCase) Create(ctx context.Context, actorID string, in *dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}

	existing, err := uc.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q taken", domain.ErrDuplicate, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     in.FullName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.recordActivity(actorID, entity.ActivityCreateUser,
		fmt.Sprintf("Created user '%s' (%s)", user.Username, user.Role), user.ID)
	return toUserResponse(user), nil
}

func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	users, err := uc.users.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Role != "" && !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}

	user.FullName = in.FullName
	user.Email = in.Email
	user.PhoneNumber = in.PhoneNumber
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(user); err != nil {
		return nil, err
	}

	uc.recordActivity(actorID, entity.ActivityUpdateUser,
		fmt.Sprintf("Updated user '%s'", user.Username), user.ID)
	return toUserResponse(user), nil
}

// Delete soft-deletes an account. An actor cannot delete their own account.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := uc.users.Delete(id); err != nil {
		return err
	}

	uc.recordActivity(actorID, entity.ActivityDeleteUser,
		fmt.Sprintf("Deleted user '%s'", user.Username), id)
	return nil
}

func (uc *UserUseCase) recordActivity(userID, activityType, description, entityID string) {
	err := uc.activity.Create(&entity.ActivityLogEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		EntityType:   "User",
		EntityID:     entityID,
		Timestamp:    time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("activity", activityType).Msg("activity log write failed")
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
