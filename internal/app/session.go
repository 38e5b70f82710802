// Package app holds the session state: the single active blueprint, the
// plan flag, the two journals and the per-facet reading cache. All state is
// confined to one session; the only coordination is the mutex plus a
// single-flight guard per facet key.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/singleflight"

	"github.com/synchromap/synchromap-go/internal/domain"
	"github.com/synchromap/synchromap-go/internal/ports"
)

type facetStatus string

const (
	facetPending facetStatus = "pending"
	facetReady   facetStatus = "ready"
	facetFailed  facetStatus = "failed"
)

// facetEntry is one slot of the keyed reading cache. A failed fetch caches
// the fallback so the facet is not retried within the session.
type facetEntry struct {
	status facetStatus
	value  domain.Interpretation
}

// SessionService orchestrates onboarding, journals, facet readings and the
// plan gate on top of the oracle and the state store.
type SessionService struct {
	oracle ports.Oracle
	store  ports.StateStore
	logger *slog.Logger

	mu        sync.RWMutex
	blueprint *domain.BirthBlueprint
	plan      domain.PlanState
	journals  map[domain.LogKind][]domain.LogEntry
	facets    map[domain.Facet]*facetEntry
	gen       int // bumped when the blueprint is replaced; stale fetches are discarded

	flight singleflight.Group

	now   func() time.Time
	newID func() string
}

func NewSessionService(oracle ports.Oracle, store ports.StateStore, logger *slog.Logger) *SessionService {
	return &SessionService{
		oracle:   oracle,
		store:    store,
		logger:   logger,
		plan:     domain.NewPlanState(false),
		journals: make(map[domain.LogKind][]domain.LogEntry),
		facets:   make(map[domain.Facet]*facetEntry),
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
}

// Restore loads persisted blueprint and plan. Storage failures are logged
// and treated as absence; a restored session never re-invokes the oracle.
func (s *SessionService) Restore(ctx context.Context) {
	bp, ok, err := s.store.LoadBlueprint(ctx)
	if err != nil {
		s.logger.Warn("blueprint restore failed, starting fresh", "error", err)
	}
	plan, err := s.store.LoadPlan(ctx)
	if err != nil {
		s.logger.Warn("plan restore failed, defaulting to free", "error", err)
		plan = domain.NewPlanState(false)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.blueprint = &bp
	}
	s.plan = plan
}

// Blueprint returns the active blueprint, if onboarding has completed.
func (s *SessionService) Blueprint() (domain.BirthBlueprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blueprint == nil {
		return domain.BirthBlueprint{}, false
	}
	return *s.blueprint, true
}

func (s *SessionService) Plan() domain.PlanState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// CompleteOnboarding asks the oracle for a fresh blueprint and, on success,
// installs it as the session's blueprint, resetting journals and the facet
// cache. An oracle failure leaves the session untouched so the caller can
// simply resubmit.
func (s *SessionService) CompleteOnboarding(ctx context.Context, req ports.BlueprintRequest) (domain.BirthBlueprint, error) {
	bp, err := s.oracle.GenerateBlueprint(ctx, req)
	if err != nil {
		return domain.BirthBlueprint{}, err
	}

	s.mu.Lock()
	s.blueprint = &bp
	s.journals = make(map[domain.LogKind][]domain.LogEntry)
	s.facets = make(map[domain.Facet]*facetEntry)
	s.gen++
	s.mu.Unlock()

	if err := s.store.SaveBlueprint(ctx, bp); err != nil {
		s.logger.Warn("blueprint not persisted, continuing", "error", err)
	}
	return bp, nil
}

// Upgrade flips the plan to paid. There is no downgrade.
func (s *SessionService) Upgrade(ctx context.Context) domain.PlanState {
	s.mu.Lock()
	s.plan = s.plan.Upgrade()
	plan := s.plan
	s.mu.Unlock()

	if err := s.store.SavePlan(ctx, plan); err != nil {
		s.logger.Warn("plan not persisted, continuing", "error", err)
	}
	return plan
}

// AddLog records a journal entry and then asks the oracle to interpret it.
// The entry is inserted at the head of its journal before the oracle call,
// so it is visible immediately; the interpretation (or the fixed fallback on
// failure) is attached in place afterwards. The entry is never dropped.
func (s *SessionService) AddLog(ctx context.Context, kind domain.LogKind, description string) (domain.LogEntry, error) {
	if _, err := domain.ParseLogKind(string(kind)); err != nil {
		return domain.LogEntry{}, err
	}
	if strings.TrimSpace(description) == "" {
		return domain.LogEntry{}, domain.ErrEmptyDescription
	}

	s.mu.Lock()
	if s.blueprint == nil {
		s.mu.Unlock()
		return domain.LogEntry{}, domain.ErrNoBlueprint
	}
	bp := *s.blueprint
	entry := domain.LogEntry{
		ID:          s.newID(),
		CreatedAt:   s.now(),
		Kind:        kind,
		Description: description,
	}
	s.journals[kind] = append([]domain.LogEntry{entry}, s.journals[kind]...)
	s.mu.Unlock()

	interp, err := s.oracle.InterpretLog(ctx, kind, description, bp)
	if err != nil {
		s.logger.Warn("log interpretation failed, attaching fallback",
			"kind", kind, "id", entry.ID, "error", err)
		interp = domain.FallbackLogInterpretation(kind)
	}

	s.attach(kind, entry.ID, interp)
	entry.Interpretation = &interp
	return entry, nil
}

// attach writes the interpretation into the entry's slot. Last write wins;
// an entry displaced by a blueprint reset is silently gone.
func (s *SessionService) attach(kind domain.LogKind, id string, interp domain.Interpretation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.journals[kind]
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Interpretation = &interp
			return
		}
	}
}

// Journal returns a most-recent-first snapshot of one journal.
func (s *SessionService) Journal(kind domain.LogKind) ([]domain.LogEntry, error) {
	if _, err := domain.ParseLogKind(string(kind)); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.LogEntry, len(s.journals[kind]))
	copy(entries, s.journals[kind])
	return entries, nil
}

// FacetReading returns the cached reading for a facet, fetching it from the
// oracle at most once per facet/blueprint pair. Concurrent requests for the
// same facet collapse into a single outbound call. A failed fetch caches the
// fallback. The whole-blueprint reading requires the paid plan.
func (s *SessionService) FacetReading(ctx context.Context, facet domain.Facet) (domain.Interpretation, error) {
	if _, err := domain.ParseFacet(string(facet)); err != nil {
		return domain.Interpretation{}, err
	}

	s.mu.RLock()
	if s.blueprint == nil {
		s.mu.RUnlock()
		return domain.Interpretation{}, domain.ErrNoBlueprint
	}
	bp := *s.blueprint
	plan := s.plan
	gen := s.gen
	s.mu.RUnlock()

	if facet == domain.FacetBlueprint && !plan.Paid() {
		return domain.Interpretation{}, domain.ErrUpgradeRequired
	}

	// The generation in the key stops a reading fetched for a replaced
	// blueprint from being shared with the new one.
	key := fmt.Sprintf("%d:%s", gen, facet)
	v, _, _ := s.flight.Do(key, func() (any, error) {
		s.mu.Lock()
		if e, ok := s.facets[facet]; ok && e.status != facetPending {
			value := e.value
			s.mu.Unlock()
			return value, nil
		}
		s.facets[facet] = &facetEntry{status: facetPending}
		s.mu.Unlock()

		interp, err := s.oracle.InterpretFacet(ctx, facet, bp)
		status := facetReady
		if err != nil {
			s.logger.Warn("facet interpretation failed, caching fallback",
				"facet", facet, "error", err)
			interp = domain.FallbackFacetInterpretation(facet)
			status = facetFailed
		}

		s.mu.Lock()
		if s.gen == gen {
			s.facets[facet] = &facetEntry{status: status, value: interp}
		}
		s.mu.Unlock()
		return interp, nil
	})

	return v.(domain.Interpretation), nil
}
