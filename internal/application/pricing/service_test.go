package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fresco-api/internal/application/pricing"
	"github.com/jhoicas/fresco-api/internal/domain"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	eligible  []repository.EligibleBatch
	listErr   error
	discounts map[string]int // batchID -> pct aplicado vía UpdateDiscount

	// bloqueo opcional para simular una corrida larga (test de exclusión)
	enterList chan struct{}
	release   chan struct{}
}

func (f *fakeBatchRepo) Create(*entity.Batch) error                 { return nil }
func (f *fakeBatchRepo) GetByID(string) (*entity.Batch, error)      { return nil, nil }
func (f *fakeBatchRepo) GetForUpdate(string) (*entity.Batch, error) { return nil, nil }
func (f *fakeBatchRepo) List(string, int, int) ([]*entity.Batch, error) {
	return nil, nil
}

func (f *fakeBatchRepo) ListEligible() ([]repository.EligibleBatch, error) {
	if f.enterList != nil {
		close(f.enterList)
		<-f.release
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.eligible, nil
}

func (f *fakeBatchRepo) Update(*entity.Batch) error        { return nil }
func (f *fakeBatchRepo) UpdateStatus(string, string) error { return nil }
func (f *fakeBatchRepo) UpdateDiscount(id string, pct int) error {
	if f.discounts == nil {
		f.discounts = map[string]int{}
	}
	f.discounts[id] = pct
	return nil
}
func (f *fakeBatchRepo) CountByItem(string) (int, error) { return 0, nil }
func (f *fakeBatchRepo) Delete(string) error             { return nil }

type fakeSuggestionRepo struct {
	byID        map[string]*entity.DiscountSuggestion
	pending     map[string]*entity.DiscountSuggestion // batchID -> PENDING
	createErrOn map[string]error                      // batchID -> error al crear
	created     []*entity.DiscountSuggestion
}

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{
		byID:    map[string]*entity.DiscountSuggestion{},
		pending: map[string]*entity.DiscountSuggestion{},
	}
}

func (f *fakeSuggestionRepo) Create(s *entity.DiscountSuggestion) error {
	if err := f.createErrOn[s.BatchID]; err != nil {
		return err
	}
	cp := *s
	f.byID[s.ID] = &cp
	if s.Status == entity.SuggestionStatusPending {
		f.pending[s.BatchID] = &cp
	}
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeSuggestionRepo) GetByID(id string) (*entity.DiscountSuggestion, error) {
	return f.byID[id], nil
}

func (f *fakeSuggestionRepo) GetForUpdate(id string) (*entity.DiscountSuggestion, error) {
	return f.byID[id], nil
}

func (f *fakeSuggestionRepo) GetPendingByBatch(batchID string) (*entity.DiscountSuggestion, error) {
	return f.pending[batchID], nil
}

func (f *fakeSuggestionRepo) List(status string, limit, offset int) ([]*entity.DiscountSuggestion, error) {
	var out []*entity.DiscountSuggestion
	for _, s := range f.byID {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSuggestionRepo) Update(s *entity.DiscountSuggestion) error {
	cp := *s
	f.byID[s.ID] = &cp
	if s.Status != entity.SuggestionStatusPending {
		delete(f.pending, s.BatchID)
	}
	return nil
}

func (f *fakeSuggestionRepo) ExpirePendingByBatch(batchID string) error {
	if p, ok := f.pending[batchID]; ok {
		p.Status = entity.SuggestionStatusExpired
		delete(f.pending, batchID)
	}
	return nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLogEntry
}

func (f *fakeAuditRepo) Create(e *entity.AuditLogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(string, string, int) ([]*entity.AuditLogEntry, error) {
	return f.entries, nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes (sin transacción real).
type fakeTxRunner struct {
	batches     *fakeBatchRepo
	suggestions *fakeSuggestionRepo
	audit       *fakeAuditRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.BatchRepository,
	repository.SuggestionRepository,
	repository.AuditRepository,
) error) error {
	return fn(f.batches, f.suggestions, f.audit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func fixedNow() time.Time { return hoy }

// elegible arma una fila lote + artículo con vencimiento a `days` días de hoy.
func elegible(batchID string, qty int, price int64, days int) repository.EligibleBatch {
	return repository.EligibleBatch{
		BatchID:    batchID,
		ItemID:     "item-" + batchID,
		SKU:        "SKU-" + batchID,
		ItemName:   "Producto " + batchID,
		Quantity:   qty,
		ExpiryDate: hoy.AddDate(0, 0, days),
		Status:     entity.BatchStatusActive,
		BasePrice:  decimal.NewFromInt(price),
		Unit:       "unidad",
	}
}

func newService(batches *fakeBatchRepo, sugs *fakeSuggestionRepo) *pricing.SuggestionService {
	tx := &fakeTxRunner{batches: batches, suggestions: sugs, audit: &fakeAuditRepo{}}
	return pricing.NewSuggestionService(batches, sugs, tx, testLogger(), fixedNow)
}

// ──────────────────────────────────────────────────────────────────────────────
// EstimatedRevenue
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimatedRevenue_Tabla(t *testing.T) {
	cases := []struct {
		qty      int
		price    int64
		pct      int
		expected string
	}{
		{50, 40, 40, "1200"},  // vence hoy: 50 × 40 × 0.60
		{20, 60, 25, "900"},   // vence mañana: 20 × 60 × 0.75
		{30, 120, 10, "3240"}, // vence en 2 días: 30 × 120 × 0.90
		{10, 100, 0, "1000"},  // sin descuento
	}
	for _, tc := range cases {
		got := pricing.EstimatedRevenue(tc.qty, decimal.NewFromInt(tc.price), tc.pct)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
			"qty=%d price=%d pct=%d: esperado %s, obtenido %s", tc.qty, tc.price, tc.pct, tc.expected, got)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Run: corrida del servicio de precios
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_CreaSugerenciasSegunDiasRestantes(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),  // tier 40 → 1200
		elegible("b1", 20, 60, 1),  // tier 25 → 900
		elegible("b2", 30, 120, 2), // tier 10 → 3240
		elegible("b5", 40, 50, 5),  // tier 0 → sin sugerencia
	}}
	sugs := newFakeSuggestionRepo()
	svc := newService(batches, sugs)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, out.Success)

	assert.Equal(t, 4, out.Stats.Analyzed)
	assert.Equal(t, 3, out.Stats.Created)
	assert.Equal(t, 1, out.Stats.Skipped)
	assert.Equal(t, 0, out.Stats.Errors)
	assert.True(t, out.Stats.TotalEstimatedRevenue.Equal(decimal.NewFromInt(5340)),
		"1200 + 900 + 3240 = 5340, obtenido %s", out.Stats.TotalEstimatedRevenue)

	// Presentación: mayor ingreso estimado primero.
	require.Len(t, out.Suggestions, 3)
	assert.Equal(t, "b2", out.Suggestions[0].BatchID)
	assert.Equal(t, "b0", out.Suggestions[1].BatchID)
	assert.Equal(t, "b1", out.Suggestions[2].BatchID)

	// Todas quedan PENDING con su tier.
	assert.Equal(t, 40, out.Suggestions[1].DiscountPct)
	assert.Equal(t, 25, out.Suggestions[2].DiscountPct)
	assert.Equal(t, 10, out.Suggestions[0].DiscountPct)
	for _, s := range out.Suggestions {
		assert.Equal(t, entity.SuggestionStatusPending, s.Status)
	}
}

func TestRun_EsIdempotente(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),
	}}
	sugs := newFakeSuggestionRepo()
	svc := newService(batches, sugs)

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.Created)

	// Segunda corrida sin aprobar nada: la PENDING existente evita el duplicado.
	second, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Stats.Created)
	assert.Equal(t, 1, second.Stats.Skipped)
	assert.Len(t, sugs.created, 1)
}

func TestRun_OmiteVencidosYConDescuento(t *testing.T) {
	conDescuento := elegible("bd", 10, 100, 1)
	conDescuento.DiscountPct = 25

	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("bv", 10, 100, -1), // vencido: no se sugiere
		conDescuento,                // ya rebajado: no se vuelve a sugerir
		elegible("bs", 0, 100, 1),   // sin stock
	}}
	sugs := newFakeSuggestionRepo()
	svc := newService(batches, sugs)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stats.Created)
	assert.Equal(t, 3, out.Stats.Skipped)
}

func TestRun_FalloParcialNoAbortaLaCorrida(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),
		elegible("b1", 20, 60, 1),
	}}
	sugs := newFakeSuggestionRepo()
	sugs.createErrOn = map[string]error{"b0": errors.New("constraint roto")}
	svc := newService(batches, sugs)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, out.Success, "un error por lote no invalida la corrida")
	assert.Equal(t, 1, out.Stats.Created)
	assert.Equal(t, 1, out.Stats.Errors)
}

func TestRun_FalloDelQueryInicialDevuelveSuccessFalse(t *testing.T) {
	batches := &fakeBatchRepo{listErr: errors.New("db caída")}
	svc := newService(batches, newFakeSuggestionRepo())

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "db caída")
}

func TestRun_CorridasConcurrentesSeExcluyen(t *testing.T) {
	batches := &fakeBatchRepo{
		eligible:  []repository.EligibleBatch{elegible("b0", 50, 40, 0)},
		enterList: make(chan struct{}),
		release:   make(chan struct{}),
	}
	svc := newService(batches, newFakeSuggestionRepo())

	done := make(chan struct{})
	go func() {
		_, _ = svc.Run(context.Background())
		close(done)
	}()

	<-batches.enterList // la primera corrida está en curso
	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	close(batches.release)
	<-done
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject: máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func runOnce(t *testing.T, svc *pricing.SuggestionService) string {
	t.Helper()
	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Suggestions, 1)
	return out.Suggestions[0].ID
}

func TestApprove_AplicaDescuentoAlLote(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),
	}}
	sugs := newFakeSuggestionRepo()
	svc := newService(batches, sugs)
	id := runOnce(t, svc)

	out, err := svc.Approve(context.Background(), id, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SuggestionStatusApproved, out.Status)
	assert.Equal(t, "user-1", out.ApprovedBy)
	require.NotNil(t, out.ResolvedAt)
	assert.Equal(t, 40, batches.discounts["b0"], "el descuento debe escribirse en el lote")
}

func TestApprove_DosVecesDevuelveConflicto(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),
	}}
	sugs := newFakeSuggestionRepo()
	svc := newService(batches, sugs)
	id := runOnce(t, svc)

	_, err := svc.Approve(context.Background(), id, "user-1")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), id, "user-2")
	assert.ErrorIs(t, err, domain.ErrConflict, "no se puede resolver dos veces")
}

func TestReject_RequiereMotivo(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),
	}}
	svc := newService(batches, newFakeSuggestionRepo())
	id := runOnce(t, svc)

	_, err := svc.Reject(context.Background(), id, "user-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := svc.Reject(context.Background(), id, "user-1", "el margen no da")
	require.NoError(t, err)
	assert.Equal(t, entity.SuggestionStatusRejected, out.Status)
	assert.Equal(t, "el margen no da", out.RejectionReason)
}

func TestReject_LuegoNuevaCorridaVuelveASugerir(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		elegible("b0", 50, 40, 0),
	}}
	sugs := newFakeSuggestionRepo()
	svc := newService(batches, sugs)
	id := runOnce(t, svc)

	_, err := svc.Reject(context.Background(), id, "user-1", "precio aún rentable")
	require.NoError(t, err)

	// El lote sigue sin descuento, así que una corrida futura lo vuelve a proponer.
	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Stats.Created)
}

func TestApprove_SugerenciaInexistenteDevuelveNotFound(t *testing.T) {
	svc := newService(&fakeBatchRepo{}, newFakeSuggestionRepo())
	_, err := svc.Approve(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
