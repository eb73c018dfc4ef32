package catalog

import (
	"time"

	catalogDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/catalog"
)

type Status struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsClosed  bool      `json:"is_closed"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Priority struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func StatusFromDataModel(s *catalogDatamodel.Status) *Status {
	return &Status{
		ID:        s.ID,
		Name:      s.Name,
		IsClosed:  s.IsClosed,
		IsActive:  s.IsActive,
		SortOrder: s.SortOrder,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func PriorityFromDataModel(p *catalogDatamodel.Priority) *Priority {
	return &Priority{
		ID:        p.ID,
		Name:      p.Name,
		IsActive:  p.IsActive,
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func CategoryFromDataModel(c *catalogDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
