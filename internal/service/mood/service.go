package mood

import (
	"context"

	"github.com/milo-garden/mindful-garden/backend/internal/apperr"
	"github.com/milo-garden/mindful-garden/backend/internal/model/mood"
)

// RecentLimit caps how many entries a listing returns.
const RecentLimit = 10

// Service records and lists mood entries.
type Service struct {
	store mood.Store
}

func NewService(store mood.Store) *Service {
	return &Service{store: store}
}

// Create stores fields and returns the assigned id.
func (s *Service) Create(ctx context.Context, fields map[string]any) (string, error) {
	if len(fields) == 0 {
		return "", apperr.Validation("Missing mood data")
	}

	id, err := s.store.Create(ctx, fields)
	if err != nil {
		return "", apperr.Upstream(err)
	}
	return id, nil
}

// Recent returns the newest entries, at most RecentLimit.
func (s *Service) Recent(ctx context.Context) ([]mood.Entry, error) {
	entries, err := s.store.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	if entries == nil {
		entries = []mood.Entry{}
	}
	return entries, nil
}
