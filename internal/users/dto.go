package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
)

// UserDTO is the API shape for a customer identity.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        *string    `json:"name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AdminDTO is the API shape for a back-office operator.
type AdminDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// FromModel converts the persistence model into its API shape.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// AdminFromModel converts the admin persistence model into its API shape.
func AdminFromModel(admin *models.Admin) *AdminDTO {
	if admin == nil {
		return nil
	}
	return &AdminDTO{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
	}
}
