package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
)

// UserRepository defines account persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	ListByStatus(ctx context.Context, status entities.UserStatus) ([]*entities.User, error)
}
