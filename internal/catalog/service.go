package catalog

import (
	"log/slog"

	catalogDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	GetAllStatuses() ([]*catalogDatamodel.Status, error)
	GetStatusByID(id int64) (*catalogDatamodel.Status, error)
	GetAllPriorities() ([]*catalogDatamodel.Priority, error)
	GetPriorityByID(id int64) (*catalogDatamodel.Priority, error)
	GetAllCategories() ([]*catalogDatamodel.Category, error)
	GetCategoryByID(id int64) (*catalogDatamodel.Category, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllStatuses() ([]StatusResponse, error) {
	dataStatuses, err := s.repo.GetAllStatuses()
	if err != nil {
		s.logger.Error("failed to get statuses from repository", "error", err)
		return nil, err
	}

	var responses []StatusResponse
	for _, dataStatus := range dataStatuses {
		if !dataStatus.IsActive {
			continue
		}
		responses = append(responses, StatusFromDataModel(dataStatus).ToResponse())
	}

	s.logger.Info("retrieved statuses", "count", len(responses))
	return responses, nil
}

func (s *Service) GetAllPriorities() ([]PriorityResponse, error) {
	dataPriorities, err := s.repo.GetAllPriorities()
	if err != nil {
		s.logger.Error("failed to get priorities from repository", "error", err)
		return nil, err
	}

	var responses []PriorityResponse
	for _, dataPriority := range dataPriorities {
		if !dataPriority.IsActive {
			continue
		}
		responses = append(responses, PriorityFromDataModel(dataPriority).ToResponse())
	}

	s.logger.Info("retrieved priorities", "count", len(responses))
	return responses, nil
}

func (s *Service) GetAllCategories() ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAllCategories()
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	var responses []CategoryResponse
	for _, dataCategory := range dataCategories {
		if !dataCategory.IsActive {
			continue
		}
		responses = append(responses, CategoryFromDataModel(dataCategory).ToResponse())
	}

	s.logger.Info("retrieved categories", "count", len(responses))
	return responses, nil
}

// IsValidStatus reports whether the id names an active status.
func (s *Service) IsValidStatus(id int64) bool {
	status, err := s.repo.GetStatusByID(id)
	if err != nil {
		s.logger.Warn("error checking status validity", "status_id", id, "error", err)
		return false
	}
	return status != nil && status.IsActive
}

func (s *Service) IsValidPriority(id int64) bool {
	priority, err := s.repo.GetPriorityByID(id)
	if err != nil {
		s.logger.Warn("error checking priority validity", "priority_id", id, "error", err)
		return false
	}
	return priority != nil && priority.IsActive
}

func (s *Service) IsValidCategory(id int64) bool {
	category, err := s.repo.GetCategoryByID(id)
	if err != nil {
		s.logger.Warn("error checking category validity", "category_id", id, "error", err)
		return false
	}
	return category != nil && category.IsActive
}

// IsClosedStatus reports whether the id names a status that closes a ticket.
func (s *Service) IsClosedStatus(id int64) bool {
	status, err := s.repo.GetStatusByID(id)
	if err != nil {
		s.logger.Warn("error checking status closed flag", "status_id", id, "error", err)
		return false
	}
	return status != nil && status.IsClosed
}
