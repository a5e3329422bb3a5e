package survey

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned for unknown survey or dataset IDs.
var ErrNotFound = errors.New("not found")

// Store persists survey definitions and their tabulated datasets.
type Store interface {
	PutSurvey(ctx context.Context, s Survey) error
	GetSurvey(ctx context.Context, id string) (Survey, error)
	PutDataset(ctx context.Context, d Dataset) error
	GetDataset(ctx context.Context, surveyID, datasetID string) (Dataset, error)
	ListDatasets(ctx context.Context, surveyID string) ([]Dataset, error)
}

type memoryStore struct {
	mu       sync.RWMutex
	surveys  map[string]Survey
	datasets map[string]Dataset
}

// NewInMemoryStore is used by tests and single-shot runs.
func NewInMemoryStore() Store {
	return &memoryStore{
		surveys:  map[string]Survey{},
		datasets: map[string]Dataset{},
	}
}

func (m *memoryStore) PutSurvey(_ context.Context, s Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surveys[s.ID] = s
	return nil
}

func (m *memoryStore) GetSurvey(_ context.Context, id string) (Survey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.surveys[id]
	if !ok {
		return Survey{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) PutDataset(_ context.Context, d Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.surveys[d.SurveyID]; !ok {
		return ErrNotFound
	}
	m.datasets[d.ID] = d
	return nil
}

func (m *memoryStore) GetDataset(_ context.Context, surveyID, datasetID string) (Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.datasets[datasetID]
	if !ok || d.SurveyID != surveyID {
		return Dataset{}, ErrNotFound
	}
	return d, nil
}

func (m *memoryStore) ListDatasets(_ context.Context, surveyID string) ([]Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Dataset
	for _, d := range m.datasets {
		if d.SurveyID == surveyID {
			out = append(out, d)
		}
	}
	return out, nil
}
