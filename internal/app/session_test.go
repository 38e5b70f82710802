package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchromap/synchromap-go/internal/domain"
	"github.com/synchromap/synchromap-go/internal/ports"
)

func testBlueprint() domain.BirthBlueprint {
	return domain.BirthBlueprint{
		FullName:             "Ada Lovelace",
		LifePathNumber:       7,
		ExpressionNumber:     11,
		SoulUrgeNumber:       3,
		PersonalityNumber:    8,
		SunSign:              "Sagittarius",
		MoonSign:             "Pisces",
		RisingSign:           "Virgo",
		ChineseZodiac:        "Rooster",
		ChineseZodiacElement: "Wood",
	}
}

func testRequest() ports.BlueprintRequest {
	return ports.BlueprintRequest{
		FullName:     "Ada Lovelace",
		DateOfBirth:  "1815-12-10",
		TimeOfBirth:  "04:20",
		PlaceOfBirth: "London, England",
	}
}

type mockOracle struct {
	mu sync.Mutex

	blueprint    domain.BirthBlueprint
	blueprintErr error
	interp       domain.Interpretation
	logErr       error
	facetErr     error

	blueprintCalls int
	logCalls       int
	facetCalls     map[domain.Facet]int

	// When set, InterpretLog/InterpretFacet block until the gate closes;
	// started is closed on the first blocked call.
	gate    chan struct{}
	started chan struct{}
	once    sync.Once
}

func newMockOracle() *mockOracle {
	return &mockOracle{
		blueprint:  testBlueprint(),
		interp:     domain.Interpretation{Summary: "A sign.", FullInterpretation: "**Deep** meaning."},
		facetCalls: make(map[domain.Facet]int),
	}
}

func (m *mockOracle) block() {
	if m.gate != nil {
		m.once.Do(func() { close(m.started) })
		<-m.gate
	}
}

func (m *mockOracle) GenerateBlueprint(_ context.Context, req ports.BlueprintRequest) (domain.BirthBlueprint, error) {
	if err := req.Validate(); err != nil {
		return domain.BirthBlueprint{}, err
	}
	m.mu.Lock()
	m.blueprintCalls++
	m.mu.Unlock()
	return m.blueprint, m.blueprintErr
}

func (m *mockOracle) InterpretLog(_ context.Context, _ domain.LogKind, _ string, _ domain.BirthBlueprint) (domain.Interpretation, error) {
	m.mu.Lock()
	m.logCalls++
	m.mu.Unlock()
	m.block()
	if m.logErr != nil {
		return domain.Interpretation{}, m.logErr
	}
	return m.interp, nil
}

func (m *mockOracle) InterpretFacet(_ context.Context, facet domain.Facet, _ domain.BirthBlueprint) (domain.Interpretation, error) {
	m.mu.Lock()
	m.facetCalls[facet]++
	m.mu.Unlock()
	m.block()
	if m.facetErr != nil {
		return domain.Interpretation{}, m.facetErr
	}
	return m.interp, nil
}

type mockStore struct {
	mu sync.Mutex

	bp   *domain.BirthBlueprint
	plan domain.PlanState

	loadErr error
	saveErr error

	blueprintSaves int
	planSaves      int
}

func (m *mockStore) LoadBlueprint(context.Context) (domain.BirthBlueprint, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.BirthBlueprint{}, false, m.loadErr
	}
	if m.bp == nil {
		return domain.BirthBlueprint{}, false, nil
	}
	return *m.bp, true, nil
}

func (m *mockStore) SaveBlueprint(_ context.Context, bp domain.BirthBlueprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.bp = &bp
	m.blueprintSaves++
	return nil
}

func (m *mockStore) LoadPlan(context.Context) (domain.PlanState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.PlanState{}, m.loadErr
	}
	return m.plan, nil
}

func (m *mockStore) SavePlan(_ context.Context, plan domain.PlanState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.plan = plan
	m.planSaves++
	return nil
}

func newTestSession(t *testing.T, oracle *mockOracle, store *mockStore) *SessionService {
	t.Helper()
	if store == nil {
		store = &mockStore{}
	}
	s := NewSessionService(oracle, store, slog.Default())
	seq := 0
	s.now = func() time.Time {
		seq++
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Second)
	}
	id := 0
	s.newID = func() string {
		id++
		return fmt.Sprintf("entry-%03d", id)
	}
	return s
}

func onboarded(t *testing.T, oracle *mockOracle, store *mockStore) *SessionService {
	t.Helper()
	s := newTestSession(t, oracle, store)
	_, err := s.CompleteOnboarding(context.Background(), testRequest())
	require.NoError(t, err)
	return s
}

func TestCompleteOnboarding_Success(t *testing.T) {
	oracle := newMockOracle()
	store := &mockStore{}
	s := newTestSession(t, oracle, store)

	bp, err := s.CompleteOnboarding(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, testBlueprint(), bp)

	got, ok := s.Blueprint()
	require.True(t, ok)
	assert.Equal(t, testBlueprint(), got)
	assert.Equal(t, 1, store.blueprintSaves, "blueprint written through on success")
}

func TestCompleteOnboarding_FailureLeavesSessionUntouched(t *testing.T) {
	oracle := newMockOracle()
	oracle.blueprintErr = fmt.Errorf("%w: upstream 503", domain.ErrOracle)
	store := &mockStore{}
	s := newTestSession(t, oracle, store)

	_, err := s.CompleteOnboarding(context.Background(), testRequest())
	require.ErrorIs(t, err, domain.ErrOracle)

	_, ok := s.Blueprint()
	assert.False(t, ok)
	assert.Zero(t, store.blueprintSaves)
}

func TestCompleteOnboarding_StorageFailureIsNotFatal(t *testing.T) {
	oracle := newMockOracle()
	store := &mockStore{saveErr: errors.New("disk full")}
	s := newTestSession(t, oracle, store)

	_, err := s.CompleteOnboarding(context.Background(), testRequest())
	require.NoError(t, err, "persistence failure must not fail onboarding")

	_, ok := s.Blueprint()
	assert.True(t, ok)
}

func TestAddLog_EntryVisibleBeforeInterpretationResolves(t *testing.T) {
	oracle := newMockOracle()
	oracle.gate = make(chan struct{})
	oracle.started = make(chan struct{})
	s := onboarded(t, oracle, nil)

	done := make(chan domain.LogEntry, 1)
	go func() {
		entry, err := s.AddLog(context.Background(), domain.LogSynchronicity, "Saw 444 on a clock")
		if err == nil {
			done <- entry
		}
	}()

	<-oracle.started

	// The oracle call is still blocked, yet the entry is already listed.
	entries, err := s.Journal(domain.LogSynchronicity)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Saw 444 on a clock", entries[0].Description)
	assert.Nil(t, entries[0].Interpretation, "interpretation not yet attached")

	close(oracle.gate)
	entry := <-done
	require.NotNil(t, entry.Interpretation)

	// Attached in place, same slot, not reordered.
	entries, err = s.Journal(domain.LogSynchronicity)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Interpretation)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, *entry.Interpretation, *entries[0].Interpretation)
}

func TestAddLog_MostRecentFirst(t *testing.T) {
	oracle := newMockOracle()
	s := onboarded(t, oracle, nil)
	ctx := context.Background()

	for _, desc := range []string{"first", "second", "third"} {
		_, err := s.AddLog(ctx, domain.LogDream, desc)
		require.NoError(t, err)
	}

	entries, err := s.Journal(domain.LogDream)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Description)
	assert.Equal(t, "second", entries[1].Description)
	assert.Equal(t, "first", entries[2].Description)
	assert.True(t, entries[0].CreatedAt.After(entries[2].CreatedAt))
}

func TestAddLog_IndependentJournals(t *testing.T) {
	oracle := newMockOracle()
	s := onboarded(t, oracle, nil)
	ctx := context.Background()

	_, err := s.AddLog(ctx, domain.LogSynchronicity, "repeating numbers")
	require.NoError(t, err)
	_, err = s.AddLog(ctx, domain.LogDream, "a silver river")
	require.NoError(t, err)

	syncs, _ := s.Journal(domain.LogSynchronicity)
	dreams, _ := s.Journal(domain.LogDream)
	require.Len(t, syncs, 1)
	require.Len(t, dreams, 1)
	assert.Equal(t, domain.LogSynchronicity, syncs[0].Kind)
	assert.Equal(t, domain.LogDream, dreams[0].Kind)
}

func TestAddLog_FallbackOnOracleFailure(t *testing.T) {
	oracle := newMockOracle()
	oracle.logErr = fmt.Errorf("%w: timeout", domain.ErrOracle)
	s := onboarded(t, oracle, nil)

	entry, err := s.AddLog(context.Background(), domain.LogDream, "a locked door")
	require.NoError(t, err, "oracle failure is swallowed at this call site")

	require.NotNil(t, entry.Interpretation)
	assert.Equal(t, domain.FallbackLogInterpretation(domain.LogDream), *entry.Interpretation)

	entries, _ := s.Journal(domain.LogDream)
	require.Len(t, entries, 1, "the entry is still recorded")
	require.NotNil(t, entries[0].Interpretation)
	assert.Equal(t, domain.FallbackLogInterpretation(domain.LogDream), *entries[0].Interpretation)
}

func TestAddLog_Validation(t *testing.T) {
	oracle := newMockOracle()

	s := newTestSession(t, oracle, nil)
	_, err := s.AddLog(context.Background(), domain.LogDream, "no blueprint yet")
	assert.ErrorIs(t, err, domain.ErrNoBlueprint)

	s = onboarded(t, oracle, nil)
	_, err = s.AddLog(context.Background(), domain.LogDream, "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)

	_, err = s.AddLog(context.Background(), domain.LogKind("omen"), "something")
	assert.ErrorIs(t, err, domain.ErrUnknownLogKind)
}

func TestFacetReading_FetchedAtMostOnce(t *testing.T) {
	oracle := newMockOracle()
	s := onboarded(t, oracle, nil)
	ctx := context.Background()

	first, err := s.FacetReading(ctx, domain.FacetLifePath)
	require.NoError(t, err)
	second, err := s.FacetReading(ctx, domain.FacetLifePath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, oracle.facetCalls[domain.FacetLifePath])

	// A different facet is its own cache slot.
	_, err = s.FacetReading(ctx, domain.FacetSunSign)
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.facetCalls[domain.FacetSunSign])
}

func TestFacetReading_ConcurrentCallsCollapse(t *testing.T) {
	oracle := newMockOracle()
	oracle.gate = make(chan struct{})
	oracle.started = make(chan struct{})
	s := onboarded(t, oracle, nil)

	const callers = 8
	results := make(chan domain.Interpretation, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.FacetReading(context.Background(), domain.FacetMoonSign)
			if err == nil {
				results <- out
			}
		}()
	}

	<-oracle.started
	time.Sleep(20 * time.Millisecond) // let the rest join the flight
	close(oracle.gate)
	wg.Wait()
	close(results)

	count := 0
	for out := range results {
		count++
		assert.Equal(t, oracle.interp, out)
	}
	assert.Equal(t, callers, count, "every caller observes the resolved reading")
	assert.Equal(t, 1, oracle.facetCalls[domain.FacetMoonSign], "exactly one outbound request")
}

func TestFacetReading_FailureCachesFallback(t *testing.T) {
	oracle := newMockOracle()
	oracle.facetErr = fmt.Errorf("%w: 502", domain.ErrOracle)
	s := onboarded(t, oracle, nil)
	ctx := context.Background()

	out, err := s.FacetReading(ctx, domain.FacetExpression)
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackFacetInterpretation(domain.FacetExpression), out)

	// The failure is cached; no second outbound attempt this session.
	out, err = s.FacetReading(ctx, domain.FacetExpression)
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackFacetInterpretation(domain.FacetExpression), out)
	assert.Equal(t, 1, oracle.facetCalls[domain.FacetExpression])
}

func TestFacetReading_BlueprintOverviewRequiresPaidPlan(t *testing.T) {
	oracle := newMockOracle()
	s := onboarded(t, oracle, nil)
	ctx := context.Background()

	_, err := s.FacetReading(ctx, domain.FacetBlueprint)
	assert.ErrorIs(t, err, domain.ErrUpgradeRequired)
	assert.Zero(t, oracle.facetCalls[domain.FacetBlueprint], "no fetch for a gated facet")

	s.Upgrade(ctx)
	out, err := s.FacetReading(ctx, domain.FacetBlueprint)
	require.NoError(t, err)
	assert.Equal(t, oracle.interp, out)
}

func TestFacetReading_Validation(t *testing.T) {
	oracle := newMockOracle()

	s := newTestSession(t, oracle, nil)
	_, err := s.FacetReading(context.Background(), domain.FacetSunSign)
	assert.ErrorIs(t, err, domain.ErrNoBlueprint)

	s = onboarded(t, oracle, nil)
	_, err = s.FacetReading(context.Background(), domain.Facet("tarot"))
	assert.ErrorIs(t, err, domain.ErrUnknownFacet)
}

func TestFacetCacheResetOnNewBlueprint(t *testing.T) {
	oracle := newMockOracle()
	s := onboarded(t, oracle, nil)
	ctx := context.Background()

	_, err := s.FacetReading(ctx, domain.FacetRisingSign)
	require.NoError(t, err)

	_, err = s.CompleteOnboarding(ctx, testRequest())
	require.NoError(t, err)

	_, err = s.FacetReading(ctx, domain.FacetRisingSign)
	require.NoError(t, err)
	assert.Equal(t, 2, oracle.facetCalls[domain.FacetRisingSign], "new blueprint means a fresh fetch")
}

func TestUpgrade_OneWayAndPersisted(t *testing.T) {
	oracle := newMockOracle()
	store := &mockStore{}
	s := newTestSession(t, oracle, store)

	assert.False(t, s.Plan().Paid())

	plan := s.Upgrade(context.Background())
	assert.True(t, plan.Paid())
	assert.True(t, s.Plan().Paid())
	assert.Equal(t, 1, store.planSaves)

	// Upgrading again stays paid.
	s.Upgrade(context.Background())
	assert.True(t, s.Plan().Paid())
}

func TestRestore_ReproducesSessionWithoutOracle(t *testing.T) {
	oracle := newMockOracle()
	bp := testBlueprint()
	store := &mockStore{bp: &bp, plan: domain.NewPlanState(true)}
	s := newTestSession(t, oracle, store)

	s.Restore(context.Background())

	got, ok := s.Blueprint()
	require.True(t, ok)
	assert.Equal(t, bp, got)
	assert.True(t, s.Plan().Paid())
	assert.Zero(t, oracle.blueprintCalls, "restore never re-invokes the oracle")
}

func TestRestore_StorageFailureStartsFresh(t *testing.T) {
	oracle := newMockOracle()
	store := &mockStore{loadErr: errors.New("db locked")}
	s := newTestSession(t, oracle, store)

	s.Restore(context.Background())

	_, ok := s.Blueprint()
	assert.False(t, ok)
	assert.False(t, s.Plan().Paid())
}

func TestGateInterpretation(t *testing.T) {
	long := strings.Repeat("All is connected. ", 40) // well past the preview size
	interp := domain.Interpretation{Summary: "Short insight.", FullInterpretation: long}

	paidView, locked := GateInterpretation(interp, domain.NewPlanState(true))
	assert.False(t, locked)
	assert.Equal(t, interp, paidView)

	freeView, locked := GateInterpretation(interp, domain.NewPlanState(false))
	assert.True(t, locked)
	assert.Equal(t, interp.Summary, freeView.Summary, "summary identical across plans")
	assert.True(t, strings.HasPrefix(long, freeView.FullInterpretation), "free view is a strict prefix")
	assert.Less(t, len(freeView.FullInterpretation), len(long))
}

func TestGateInterpretation_ShortTextAndUnicode(t *testing.T) {
	short := domain.Interpretation{Summary: "s", FullInterpretation: "brief"}
	view, locked := GateInterpretation(short, domain.NewPlanState(false))
	assert.True(t, locked)
	assert.Equal(t, "brief", view.FullInterpretation)

	runes := strings.Repeat("☾", FreePreviewRunes+50)
	view, _ = GateInterpretation(domain.Interpretation{FullInterpretation: runes}, domain.NewPlanState(false))
	assert.Equal(t, FreePreviewRunes, len([]rune(view.FullInterpretation)))
	assert.True(t, strings.HasPrefix(runes, view.FullInterpretation))
}

func TestGateLogEntry(t *testing.T) {
	interp := domain.Interpretation{Summary: "s", FullInterpretation: strings.Repeat("x", 1000)}
	entry := domain.LogEntry{ID: "e1", Kind: domain.LogDream, Description: "d", Interpretation: &interp}

	gated, locked := GateLogEntry(entry, domain.NewPlanState(false))
	assert.True(t, locked)
	require.NotNil(t, gated.Interpretation)
	assert.Len(t, gated.Interpretation.FullInterpretation, FreePreviewRunes)
	assert.Len(t, interp.FullInterpretation, 1000, "original is untouched")

	pending := domain.LogEntry{ID: "e2", Kind: domain.LogDream, Description: "d"}
	gated, _ = GateLogEntry(pending, domain.NewPlanState(false))
	assert.Nil(t, gated.Interpretation)
}
