package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/repos"
	"github.com/openmuse/openmuse-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetDisplayName(ctx context.Context, userID uuid.UUID) (string, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, username string) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return users[0], nil
}

// GetDisplayName prefers the profile's display name, falling back to the
// username. Returns "" without error for unknown accounts.
func (us *userService) GetDisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if len(users) == 0 {
		return "", nil
	}
	return displayNameOf(users[0]), nil
}

// displayNameOf is the one place the display-name-then-username fallback
// lives; profile reads and the gallery store both use it.
func displayNameOf(u *types.User) string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, username string) error {
	fields := map[string]interface{}{}
	if displayName != "" {
		fields["display_name"] = displayName
	}
	if username != "" {
		fields["username"] = username
	}
	if len(fields) == 0 {
		return nil
	}
	return us.userRepo.UpdateFields(ctx, nil, userID, fields)
}
