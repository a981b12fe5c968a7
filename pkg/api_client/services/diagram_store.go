package services

import (
	"errors"
	"sync"
	"time"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDiagramNotFound is returned for unknown or expired diagram IDs.
var ErrDiagramNotFound = errors.New("diagram niet gevonden")

// DiagramStore bewaart gerenderde diagrammen in het geheugen zodat een
// resultaat gedeeld kan worden. Entries verlopen na ttl.
type DiagramStore struct {
	mu       sync.RWMutex
	diagrams map[string]models.Diagram
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewDiagramStore(ttl time.Duration, log *zap.Logger) *DiagramStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DiagramStore{
		diagrams: make(map[string]models.Diagram),
		ttl:      ttl,
		now:      time.Now,
		log:      log.Named("diagrams"),
	}
}

// Put stores mermaid under a fresh ID and returns the stored diagram.
func (s *DiagramStore) Put(blueprintName, mermaid string) models.Diagram {
	d := models.Diagram{
		ID:        uuid.New().String(),
		Blueprint: blueprintName,
		Mermaid:   mermaid,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.diagrams[d.ID] = d
	s.mu.Unlock()
	return d
}

// Get returns the diagram for id unless it is missing or older than the TTL.
func (s *DiagramStore) Get(id string) (models.Diagram, error) {
	s.mu.RLock()
	d, ok := s.diagrams[id]
	s.mu.RUnlock()
	if !ok || s.expired(d, s.now()) {
		return models.Diagram{}, ErrDiagramNotFound
	}
	return d, nil
}

// Prune drops every diagram that expired at now and returns how many were removed.
func (s *DiagramStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, d := range s.diagrams {
		if s.expired(d, now) {
			delete(s.diagrams, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("pruned diagrams", zap.Int("removed", removed), zap.Int("remaining", len(s.diagrams)))
	}
	return removed
}

// Len returns the number of stored diagrams, expired ones included.
func (s *DiagramStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.diagrams)
}

func (s *DiagramStore) expired(d models.Diagram, now time.Time) bool {
	return s.ttl > 0 && now.Sub(d.CreatedAt) >= s.ttl
}
