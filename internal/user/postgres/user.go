package user

import (
	userDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/user"
	"github.com/frahmantamala/ticket-management/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var dataUser userDatamodel.User
	err := r.db.Where("id = ? AND is_active = true", userID).First(&dataUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dataUser), nil
}
