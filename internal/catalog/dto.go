package catalog

type StatusResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsClosed  bool   `json:"is_closed"`
	SortOrder int    `json:"sort_order"`
}

type StatusesResponse struct {
	Statuses []StatusResponse `json:"statuses"`
}

type PriorityResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type PrioritiesResponse struct {
	Priorities []PriorityResponse `json:"priorities"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func (s *Status) ToResponse() StatusResponse {
	return StatusResponse{
		ID:        s.ID,
		Name:      s.Name,
		IsClosed:  s.IsClosed,
		SortOrder: s.SortOrder,
	}
}

func (p *Priority) ToResponse() PriorityResponse {
	return PriorityResponse{
		ID:        p.ID,
		Name:      p.Name,
		SortOrder: p.SortOrder,
	}
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
