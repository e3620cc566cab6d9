package repository

import "github.com/stratera/pos-api/internal/domain/entity"

// UserRepository is the persistence port for User accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	// Delete soft-deletes the account; the row stays for audit references.
	Delete(id string) error
}
