package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/reference-data-service/internal/domain"
	"github.com/spec-kit/reference-data-service/internal/events"
	"github.com/spec-kit/reference-data-service/internal/repository"
)

// ErrDepartmentNotFound is returned by Get and Update for unknown ids.
var ErrDepartmentNotFound = repository.ErrDepartmentNotFound

// DepartmentService runs the department operations against the store and
// announces successful writes on the dispatcher.
type DepartmentService struct {
	repo       repository.DepartmentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDepartmentService builds the service. dispatcher may be nil.
func NewDepartmentService(repo repository.DepartmentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// List returns one page of departments.
func (s *DepartmentService) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Department], error) {
	items, total, err := s.repo.List(ctx, req.Offset(), req.Size, req.Sort)
	if err != nil {
		return domain.Page[domain.Department]{}, err
	}
	return domain.NewPage(items, total, req), nil
}

// Get returns the department with the given id.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new department; the id is always assigned by the store.
func (s *DepartmentService) Create(ctx context.Context, name string) (*domain.Department, error) {
	saved, err := s.repo.Put(ctx, &domain.Department{Name: name})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventDepartmentCreated, saved.ID, events.DepartmentCreatedPayload{Name: saved.Name}))
	return saved, nil
}

// Update replaces the name of an existing department and returns the stored
// record as it is after the write. The lookup and the write are not atomic:
// concurrent updates to one id are last-write-wins.
func (s *DepartmentService) Update(ctx context.Context, id int64, name string) (*domain.Department, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Put(ctx, &domain.Department{ID: existing.ID, Name: name})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventDepartmentUpdated, saved.ID, events.DepartmentUpdatedPayload{
		OldName: existing.Name,
		NewName: saved.Name,
	}))
	return saved, nil
}

// Delete removes the department if present. Deleting an unknown id is not an error.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		s.publish(ctx, events.NewEvent(events.EventDepartmentDeleted, id, nil))
	}
	return nil
}

// IsNotFound reports whether err means the department does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDepartmentNotFound)
}

func (s *DepartmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("department_id", event.DepartmentID),
			zap.Error(err))
	}
}
