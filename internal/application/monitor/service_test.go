package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fresco-api/internal/application/monitor"
	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/repository"
	"github.com/jhoicas/fresco-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	eligible []repository.EligibleBatch
	listErr  error
	statuses map[string]string // batchID -> estado persistido por UpdateStatus
}

func (f *fakeBatchRepo) Create(*entity.Batch) error                 { return nil }
func (f *fakeBatchRepo) GetByID(string) (*entity.Batch, error)      { return nil, nil }
func (f *fakeBatchRepo) GetForUpdate(string) (*entity.Batch, error) { return nil, nil }
func (f *fakeBatchRepo) List(string, int, int) ([]*entity.Batch, error) {
	return nil, nil
}

func (f *fakeBatchRepo) ListEligible() ([]repository.EligibleBatch, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.eligible, nil
}

func (f *fakeBatchRepo) Update(*entity.Batch) error { return nil }
func (f *fakeBatchRepo) UpdateStatus(id, status string) error {
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[id] = status
	return nil
}
func (f *fakeBatchRepo) UpdateDiscount(string, int) error { return nil }
func (f *fakeBatchRepo) CountByItem(string) (int, error)  { return 0, nil }
func (f *fakeBatchRepo) Delete(string) error              { return nil }

type alertKey struct {
	batchID   string
	alertType string
	day       string
}

type fakeAlertRepo struct {
	existing map[alertKey]bool
	created  []*entity.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{existing: map[alertKey]bool{}}
}

func (f *fakeAlertRepo) Create(a *entity.Alert) error {
	f.created = append(f.created, a)
	f.existing[alertKey{a.BatchID, a.Type, a.CreatedAt.Format("2006-01-02")}] = true
	return nil
}

func (f *fakeAlertRepo) ExistsForDay(batchID, alertType string, day time.Time) (bool, error) {
	return f.existing[alertKey{batchID, alertType, day.Format("2006-01-02")}], nil
}

func (f *fakeAlertRepo) List(bool, int, int) ([]*entity.Alert, error) { return f.created, nil }
func (f *fakeAlertRepo) MarkRead(string) error                        { return nil }
func (f *fakeAlertRepo) MarkAllRead() error                           { return nil }
func (f *fakeAlertRepo) CountUnread() (int, error)                    { return len(f.created), nil }

type fakeSuggestionRepo struct {
	expired []string // batchIDs pasados a ExpirePendingByBatch
}

func (f *fakeSuggestionRepo) Create(*entity.DiscountSuggestion) error { return nil }
func (f *fakeSuggestionRepo) GetByID(string) (*entity.DiscountSuggestion, error) {
	return nil, nil
}
func (f *fakeSuggestionRepo) GetForUpdate(string) (*entity.DiscountSuggestion, error) {
	return nil, nil
}
func (f *fakeSuggestionRepo) GetPendingByBatch(string) (*entity.DiscountSuggestion, error) {
	return nil, nil
}
func (f *fakeSuggestionRepo) List(string, int, int) ([]*entity.DiscountSuggestion, error) {
	return nil, nil
}
func (f *fakeSuggestionRepo) Update(*entity.DiscountSuggestion) error { return nil }
func (f *fakeSuggestionRepo) ExpirePendingByBatch(batchID string) error {
	f.expired = append(f.expired, batchID)
	return nil
}

type fakeNotifier struct {
	received [][]monitor.ExpiringItem
	err      error
}

func (f *fakeNotifier) NotifyExpiring(_ context.Context, items []monitor.ExpiringItem) error {
	f.received = append(f.received, items)
	return f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return hoy }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// lote arma una fila con vencimiento a `days` días de hoy y el estado persistido dado.
func lote(batchID string, days int, status string) repository.EligibleBatch {
	return repository.EligibleBatch{
		BatchID:    batchID,
		ItemID:     "item-" + batchID,
		SKU:        "SKU-" + batchID,
		ItemName:   "Producto " + batchID,
		Quantity:   10,
		ExpiryDate: hoy.AddDate(0, 0, days),
		Status:     status,
		BasePrice:  decimal.NewFromInt(100),
		Unit:       "unidad",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Run: transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ActualizaEstadosDe3Niveles(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		lote("b-activo", 10, entity.BatchStatusActive),        // sigue ACTIVE: sin cambio
		lote("b-proximo", 3, entity.BatchStatusActive),        // pasa a EXPIRING_SOON
		lote("b-vencido", -1, entity.BatchStatusExpiringSoon), // pasa a EXPIRED
	}}
	sugs := &fakeSuggestionRepo{}
	svc := monitor.NewService(batches, newFakeAlertRepo(), sugs, nil, testLogger(), fixedNow)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.True(t, out.Success)

	assert.Equal(t, 3, out.Stats.Checked)
	assert.Equal(t, 2, out.Stats.StatusUpdates)
	assert.Equal(t, entity.BatchStatusExpiringSoon, batches.statuses["b-proximo"])
	assert.Equal(t, entity.BatchStatusExpired, batches.statuses["b-vencido"])
	_, touched := batches.statuses["b-activo"]
	assert.False(t, touched, "un lote sin cambio de estado no se reescribe")

	// El lote que venció arrastra su sugerencia PENDING a EXPIRED.
	assert.Equal(t, []string{"b-vencido"}, sugs.expired)
}

func TestRun_AlertasPorTipo(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		lote("b-hoy", 0, entity.BatchStatusExpiringSoon),
		lote("b-1d", 1, entity.BatchStatusExpiringSoon),
		lote("b-2d", 2, entity.BatchStatusExpiringSoon),
		lote("b-3d", 3, entity.BatchStatusExpiringSoon), // 3 días: estado sí, alerta no
		lote("b-venc", -2, entity.BatchStatusExpiringSoon),
	}}
	alerts := newFakeAlertRepo()
	svc := monitor.NewService(batches, alerts, &fakeSuggestionRepo{}, nil, testLogger(), fixedNow)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, out.Stats.AlertsCreated)
	assert.Equal(t, map[string]int{
		entity.AlertTypeExpiringToday: 1,
		entity.AlertTypeExpiring1Day:  1,
		entity.AlertTypeExpiring2Days: 1,
		entity.AlertTypeExpired:       1,
	}, out.Stats.AlertsByType)
}

func TestRun_DeduplicaAlertasDelMismoDia(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		lote("b-hoy", 0, entity.BatchStatusExpiringSoon),
	}}
	alerts := newFakeAlertRepo()
	svc := monitor.NewService(batches, alerts, &fakeSuggestionRepo{}, nil, testLogger(), fixedNow)

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.AlertsCreated)

	// Segunda corrida el mismo día: la alerta ya existe, no se duplica.
	second, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Stats.AlertsCreated)
	assert.Len(t, alerts.created, 1)
}

func TestRun_NotificaSoloAlertasNuevas(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		lote("b-hoy", 0, entity.BatchStatusExpiringSoon),
		lote("b-1d", 1, entity.BatchStatusExpiringSoon),
	}}
	notif := &fakeNotifier{}
	svc := monitor.NewService(batches, newFakeAlertRepo(), &fakeSuggestionRepo{}, notif, testLogger(), fixedNow)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, notif.received, 1)
	assert.Len(t, notif.received[0], 2)
	assert.Equal(t, entity.AlertTypeExpiringToday, notif.received[0][0].AlertType)

	// Segunda corrida el mismo día: sin alertas nuevas, no hay correo.
	_, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, notif.received, 1)
}

func TestRun_FalloDelNotificadorNoInvalidaLaCorrida(t *testing.T) {
	batches := &fakeBatchRepo{eligible: []repository.EligibleBatch{
		lote("b-hoy", 0, entity.BatchStatusExpiringSoon),
	}}
	notif := &fakeNotifier{err: errors.New("smtp caído")}
	svc := monitor.NewService(batches, newFakeAlertRepo(), &fakeSuggestionRepo{}, notif, testLogger(), fixedNow)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Success, "el correo es mejor esfuerzo")
	assert.Equal(t, 1, out.Stats.AlertsCreated)
}

func TestRun_FalloDelQueryInicialDevuelveSuccessFalse(t *testing.T) {
	batches := &fakeBatchRepo{listErr: errors.New("db caída")}
	svc := monitor.NewService(batches, newFakeAlertRepo(), &fakeSuggestionRepo{}, nil, testLogger(), fixedNow)

	out, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "db caída")
}
