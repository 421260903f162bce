package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

type rosterLoader interface {
	Load(ctx context.Context) ([]models.Student, error)
}

// RosterService loads the roster once per session and serves it from memory
// until an explicit refresh or logout. One remote read per session; the
// roster only changes by external edit anyway.
type RosterService struct {
	repo   rosterLoader
	logger *zap.Logger

	mu       sync.RWMutex
	students []models.Student
	loaded   bool
}

// NewRosterService constructs a RosterService.
func NewRosterService(repo rosterLoader, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{repo: repo, logger: logger}
}

// Students returns the roster in source order, loading it on first use.
func (s *RosterService) Students(ctx context.Context) ([]models.Student, error) {
	s.mu.RLock()
	if s.loaded {
		students := s.students
		s.mu.RUnlock()
		return students, nil
	}
	s.mu.RUnlock()

	students, err := s.repo.Load(ctx)
	if err != nil {
		// surface the error; the session stays usable and the next call retries
		return nil, err
	}

	s.mu.Lock()
	s.students = students
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("roster loaded", zap.Int("students", len(students)))
	return students, nil
}

// Find resolves one roster entry by name.
func (s *RosterService) Find(ctx context.Context, name string) (models.Student, error) {
	students, err := s.Students(ctx)
	if err != nil {
		return models.Student{}, err
	}
	for _, student := range students {
		if student.Name == name {
			return student, nil
		}
	}
	return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not on roster")
}

// Reset drops the cached roster so the next access reloads it.
func (s *RosterService) Reset() {
	s.mu.Lock()
	s.students = nil
	s.loaded = false
	s.mu.Unlock()
}
