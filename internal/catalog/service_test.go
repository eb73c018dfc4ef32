package catalog_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/ticket-management/internal/catalog"
	catalogDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/catalog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCatalogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Service Suite")
}

// MockRepository implements catalog.RepositoryAPI for testing
type MockRepository struct {
	statuses   map[int64]*catalogDatamodel.Status
	priorities map[int64]*catalogDatamodel.Priority
	categories map[int64]*catalogDatamodel.Category
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		statuses:   make(map[int64]*catalogDatamodel.Status),
		priorities: make(map[int64]*catalogDatamodel.Priority),
		categories: make(map[int64]*catalogDatamodel.Category),
	}
}

func (m *MockRepository) GetAllStatuses() ([]*catalogDatamodel.Status, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*catalogDatamodel.Status
	for _, status := range m.statuses {
		result = append(result, status)
	}
	return result, nil
}

func (m *MockRepository) GetStatusByID(id int64) (*catalogDatamodel.Status, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.statuses[id], nil
}

func (m *MockRepository) GetAllPriorities() ([]*catalogDatamodel.Priority, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*catalogDatamodel.Priority
	for _, priority := range m.priorities {
		result = append(result, priority)
	}
	return result, nil
}

func (m *MockRepository) GetPriorityByID(id int64) (*catalogDatamodel.Priority, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.priorities[id], nil
}

func (m *MockRepository) GetAllCategories() ([]*catalogDatamodel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*catalogDatamodel.Category
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *MockRepository) GetCategoryByID(id int64) (*catalogDatamodel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.categories[id], nil
}

var _ = Describe("Catalog Service", func() {
	var (
		mockRepo *MockRepository
		service  *catalog.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = catalog.NewService(mockRepo, logger)
	})

	Describe("GetAllStatuses", func() {
		It("should only return active statuses", func() {
			mockRepo.statuses[1] = &catalogDatamodel.Status{ID: 1, Name: "open", IsActive: true, SortOrder: 1}
			mockRepo.statuses[2] = &catalogDatamodel.Status{ID: 2, Name: "archived", IsActive: false, SortOrder: 9}

			statuses, err := service.GetAllStatuses()
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(1))
			Expect(statuses[0].Name).To(Equal("open"))
		})

		It("should propagate repository errors", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("database down")

			statuses, err := service.GetAllStatuses()
			Expect(err).To(HaveOccurred())
			Expect(statuses).To(BeNil())
		})
	})

	Describe("GetAllPriorities", func() {
		It("should only return active priorities", func() {
			mockRepo.priorities[1] = &catalogDatamodel.Priority{ID: 1, Name: "low", IsActive: true}
			mockRepo.priorities[2] = &catalogDatamodel.Priority{ID: 2, Name: "deprecated", IsActive: false}

			priorities, err := service.GetAllPriorities()
			Expect(err).NotTo(HaveOccurred())
			Expect(priorities).To(HaveLen(1))
			Expect(priorities[0].Name).To(Equal("low"))
		})
	})

	Describe("GetAllCategories", func() {
		It("should only return active categories", func() {
			mockRepo.categories[1] = &catalogDatamodel.Category{ID: 1, Name: "billing", IsActive: true}
			mockRepo.categories[2] = &catalogDatamodel.Category{ID: 2, Name: "legacy", IsActive: false}

			categories, err := service.GetAllCategories()
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("billing"))
		})
	})

	Describe("Validity checks", func() {
		BeforeEach(func() {
			mockRepo.statuses[1] = &catalogDatamodel.Status{ID: 1, Name: "open", IsActive: true}
			mockRepo.statuses[2] = &catalogDatamodel.Status{ID: 2, Name: "archived", IsActive: false}
			mockRepo.statuses[3] = &catalogDatamodel.Status{ID: 3, Name: "resolved", IsActive: true, IsClosed: true}
			mockRepo.priorities[1] = &catalogDatamodel.Priority{ID: 1, Name: "low", IsActive: true}
			mockRepo.categories[1] = &catalogDatamodel.Category{ID: 1, Name: "billing", IsActive: true}
		})

		It("should accept active statuses and reject inactive or unknown ones", func() {
			Expect(service.IsValidStatus(1)).To(BeTrue())
			Expect(service.IsValidStatus(2)).To(BeFalse())
			Expect(service.IsValidStatus(999)).To(BeFalse())
		})

		It("should accept active priorities", func() {
			Expect(service.IsValidPriority(1)).To(BeTrue())
			Expect(service.IsValidPriority(999)).To(BeFalse())
		})

		It("should accept active categories", func() {
			Expect(service.IsValidCategory(1)).To(BeTrue())
			Expect(service.IsValidCategory(999)).To(BeFalse())
		})

		It("should report closed statuses", func() {
			Expect(service.IsClosedStatus(3)).To(BeTrue())
			Expect(service.IsClosedStatus(1)).To(BeFalse())
			Expect(service.IsClosedStatus(999)).To(BeFalse())
		})

		It("should treat repository errors as invalid", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("database down")
			Expect(service.IsValidStatus(1)).To(BeFalse())
		})
	})
})
