package expiry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
	"github.com/jhoicas/fresco-api/internal/domain/expiry"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del clasificador de vencimientos.
//
// Las fronteras de los niveles (exactamente 0, 2 y 3 días) son la parte más
// propensa a errores de todo el sistema: un off-by-one aquí descuenta producto
// fresco o deja vencer stock sin alerta. Cada frontera tiene su caso explícito.
// ──────────────────────────────────────────────────────────────────────────────

// fecha fija de referencia para no depender del reloj del sistema.
var hoy = time.Date(2025, 3, 10, 14, 37, 22, 0, time.UTC) // con hora a propósito

func enDias(n int) time.Time {
	return hoy.AddDate(0, 0, n)
}

func TestDaysUntil_TruncaHoras(t *testing.T) {
	// Vence "mañana" a las 03:00; hoy son las 14:37. La diferencia real es
	// menor a 24h pero en días calendario es exactamente 1.
	vence := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, expiry.DaysUntil(hoy, vence),
		"la hora del día no debe producir off-by-one")
}

func TestDaysUntil_MismoDia(t *testing.T) {
	vence := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, expiry.DaysUntil(hoy, vence), "vence hoy = 0 días")
}

func TestDaysUntil_Vencido(t *testing.T) {
	vence := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, -3, expiry.DaysUntil(hoy, vence), "vencido hace 3 días = -3")
}

func TestStatus_TresNiveles(t *testing.T) {
	casos := []struct {
		dias     int
		esperado string
	}{
		{-10, entity.BatchStatusExpired},
		{-1, entity.BatchStatusExpired},
		{0, entity.BatchStatusExpiringSoon},
		{1, entity.BatchStatusExpiringSoon},
		{2, entity.BatchStatusExpiringSoon},
		{3, entity.BatchStatusExpiringSoon}, // frontera: 3 incluido
		{4, entity.BatchStatusActive},       // frontera: 4 ya es ACTIVE
		{30, entity.BatchStatusActive},
	}
	for _, c := range casos {
		assert.Equalf(t, c.esperado, expiry.Status(c.dias), "días=%d", c.dias)
	}
}

func TestAlertType_MapeoFino(t *testing.T) {
	casos := []struct {
		dias      int
		esperado  string
		hayAlerta bool
	}{
		{-5, entity.AlertTypeExpired, true},
		{-1, entity.AlertTypeExpired, true},
		{0, entity.AlertTypeExpiringToday, true},
		{1, entity.AlertTypeExpiring1Day, true},
		{2, entity.AlertTypeExpiring2Days, true},
		{3, "", false}, // frontera: 3 días ya no genera alerta
		{10, "", false},
	}
	for _, c := range casos {
		tipo, ok := expiry.AlertType(c.dias)
		assert.Equalf(t, c.hayAlerta, ok, "días=%d (ok)", c.dias)
		assert.Equalf(t, c.esperado, tipo, "días=%d (tipo)", c.dias)
	}
}

func TestDiscountTier_TablaCompleta(t *testing.T) {
	casos := []struct {
		dias int
		pct  int
	}{
		{-30, 0}, // vencido: nunca se sugiere descuento
		{-1, 0},
		{0, 40},
		{1, 25},
		{2, 10},
		{3, 0}, // frontera: con 3 días aún no se descuenta
		{4, 0},
		{365, 0},
	}
	for _, c := range casos {
		assert.Equalf(t, c.pct, expiry.DiscountTier(c.dias), "días=%d", c.dias)
	}
}

// El descuento nunca crece al alejarse el vencimiento: 0 días (40%) es siempre
// la rebaja más agresiva, y de ahí solo baja.
func TestDiscountTier_MonotoniaDesdeHoy(t *testing.T) {
	anterior := expiry.DiscountTier(0)
	for d := 1; d <= 10; d++ {
		actual := expiry.DiscountTier(d)
		require.LessOrEqualf(t, actual, anterior, "el descuento no puede subir al pasar de %d a %d días", d-1, d)
		anterior = actual
	}
}

// Status y AlertType deben coincidir en qué es "vencido": si Status dice
// EXPIRED, AlertType también, y viceversa.
func TestStatusYAlertType_CoherenciaEnVencidos(t *testing.T) {
	for d := -5; d <= 5; d++ {
		esVencidoStatus := expiry.Status(d) == entity.BatchStatusExpired
		tipo, _ := expiry.AlertType(d)
		esVencidoAlerta := tipo == entity.AlertTypeExpired
		assert.Equalf(t, esVencidoStatus, esVencidoAlerta, "días=%d", d)
	}
}

// Un cambio de horario de verano deja días de 23h o 25h: la resta de
// medianoches locales ya no es múltiplo de 24h y truncar se comería un día.
func TestDaysUntil_CambioDeHorarioNoCorreUnDia(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2025-03-09: arranca el horario de verano en Nueva York (día de 23h).
	hoyNY := time.Date(2025, 3, 9, 10, 0, 0, 0, ny)

	venceManana := time.Date(2025, 3, 10, 10, 0, 0, 0, ny)
	assert.Equal(t, 1, expiry.DaysUntil(hoyNY, venceManana),
		"vence mañana = 1 aunque medie un día de 23h")

	vencioAyer := time.Date(2025, 3, 8, 10, 0, 0, 0, ny)
	assert.Equal(t, -1, expiry.DaysUntil(hoyNY, vencioAyer),
		"vencido ayer = -1, nunca 0: lo vencido no recibe descuento")

	// 2025-11-02: termina el horario de verano (día de 25h).
	hoyNov := time.Date(2025, 11, 2, 10, 0, 0, 0, ny)
	venceNov := time.Date(2025, 11, 3, 10, 0, 0, 0, ny)
	assert.Equal(t, 1, expiry.DaysUntil(hoyNov, venceNov),
		"vence mañana = 1 aunque medie un día de 25h")
}

func TestDaysUntil_DeterministaConFechasReales(t *testing.T) {
	d1 := expiry.DaysUntil(hoy, enDias(5))
	d2 := expiry.DaysUntil(hoy, enDias(5))
	require.Equal(t, d1, d2, "mismo input, mismo resultado")
	assert.Equal(t, 5, d1)
}
