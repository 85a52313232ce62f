package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// retryBufferCap bounds how many failed audit writes are kept for the
// flusher. Beyond it the oldest records are dropped and counted.
const retryBufferCap = 1000

// auditService is the concrete implementation of AuditService. Records are
// written synchronously in the request path; writes that fail land in a
// retry buffer drained by a background flusher.
type auditService struct {
	repo repository.AuditRepository
	log  zerolog.Logger

	mu      sync.Mutex
	pending []models.AuditLog
	dropped int

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// newAuditService creates a new AuditService
func newAuditService(repo repository.AuditRepository, log zerolog.Logger) *auditService {
	return &auditService{
		repo: repo,
		log:  log.With().Str("service", "audit").Logger(),
	}
}

// Record writes one audit entry for the actor's mutation. Failures never
// reach the caller: auditing is observability, not control flow.
func (s *auditService) Record(ctx context.Context, actor *models.Session, entityType, entityID string, action models.AuditAction, field string, before, after interface{}) {
	entry := models.AuditLog{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Field:      field,
		Before:     marshalSnapshot(before),
		After:      marshalSnapshot(after),
		CreatedAt:  time.Now(),
	}
	if actor != nil {
		entry.TenantID = actor.User.TenantID
		entry.ActorID = actor.User.ID
		entry.ActorName = actor.User.Name
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		s.log.Error().Err(err).Str("entity_type", entityType).Str("action", string(action)).Msg("Audit write failed, buffering for retry")
		s.buffer(entry)
	}
}

// List returns one page of audit records
func (s *auditService) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.AuditLog, int, error) {
	return s.repo.List(ctx, tenantID, q)
}

// StartFlusher starts the background retry flusher
func (s *auditService) StartFlusher(ctx context.Context) {
	s.runMu.Lock()
	if s.running {
		s.runMu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.runMu.Unlock()

	s.log.Info().Msg("Audit flusher started")

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				// Final drain before exit
				s.flush(context.Background())
				s.log.Info().Msg("Audit flusher stopping")
				return
			case <-ticker.C:
				s.flush(ctx)
			}
		}
	}()
}

// StopFlusher stops the background flusher and drains the buffer
func (s *auditService) StopFlusher() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		return
	}
	s.cancel()
	<-s.done
	s.running = false
}

func (s *auditService) buffer(entry models.AuditLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) >= retryBufferCap {
		s.pending = s.pending[1:]
		s.dropped++
	}
	s.pending = append(s.pending, entry)
}

func (s *auditService) flush(ctx context.Context) {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = nil
	dropped := s.dropped
	s.dropped = 0
	s.mu.Unlock()

	inserted, err := s.repo.BatchInsert(ctx, batch)
	if err != nil {
		s.log.Error().Err(err).Int("count", len(batch)).Msg("Audit retry batch failed, re-buffering")
		s.mu.Lock()
		s.pending = append(batch, s.pending...)
		s.dropped += dropped
		s.mu.Unlock()
		return
	}

	s.log.Info().Int("inserted", inserted).Int("dropped", dropped).Msg("Audit retry batch flushed")
}

// marshalSnapshot renders an entity snapshot as JSON; nil becomes the JSON
// string "null" for the jsonb columns.
func marshalSnapshot(v interface{}) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
