package postgres

import (
	"github.com/frahmantamala/ticket-management/internal/catalog"
	catalogDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetAllStatuses() ([]*catalogDatamodel.Status, error) {
	var statuses []*catalogDatamodel.Status
	err := r.db.Order("sort_order ASC").Find(&statuses).Error
	return statuses, err
}

func (r *CatalogRepository) GetStatusByID(id int64) (*catalogDatamodel.Status, error) {
	var status catalogDatamodel.Status
	err := r.db.Where("id = ?", id).First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *CatalogRepository) GetAllPriorities() ([]*catalogDatamodel.Priority, error) {
	var priorities []*catalogDatamodel.Priority
	err := r.db.Order("sort_order ASC").Find(&priorities).Error
	return priorities, err
}

func (r *CatalogRepository) GetPriorityByID(id int64) (*catalogDatamodel.Priority, error) {
	var priority catalogDatamodel.Priority
	err := r.db.Where("id = ?", id).First(&priority).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &priority, nil
}

func (r *CatalogRepository) GetAllCategories() ([]*catalogDatamodel.Category, error) {
	var categories []*catalogDatamodel.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) GetCategoryByID(id int64) (*catalogDatamodel.Category, error) {
	var category catalogDatamodel.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
