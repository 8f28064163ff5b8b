package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ─────────────────────────────────────────────────────────────────────────────
// LoginAttemptStore: bloqueo por intentos fallidos
// ─────────────────────────────────────────────────────────────────────────────

func TestLoginAttempts_BloqueaTrasElLimite(t *testing.T) {
	store := NewLoginAttemptStore(3, 15*time.Minute)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.False(t, store.IsLocked("ana@tienda.co", now))

	store.RegisterFailure("ana@tienda.co", now)
	store.RegisterFailure("ana@tienda.co", now.Add(time.Minute))
	assert.False(t, store.IsLocked("ana@tienda.co", now.Add(time.Minute)), "2 de 3 intentos no bloquea")

	store.RegisterFailure("ana@tienda.co", now.Add(2*time.Minute))
	assert.True(t, store.IsLocked("ana@tienda.co", now.Add(3*time.Minute)), "3er intento bloquea")
}

func TestLoginAttempts_ElBloqueoVence(t *testing.T) {
	store := NewLoginAttemptStore(2, 15*time.Minute)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	store.RegisterFailure("ana@tienda.co", now)
	store.RegisterFailure("ana@tienda.co", now)
	assert.True(t, store.IsLocked("ana@tienda.co", now.Add(14*time.Minute)))
	assert.False(t, store.IsLocked("ana@tienda.co", now.Add(16*time.Minute)), "pasado el lockout se desbloquea")
}

func TestLoginAttempts_ResetLimpiaElContador(t *testing.T) {
	store := NewLoginAttemptStore(3, 15*time.Minute)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	store.RegisterFailure("ana@tienda.co", now)
	store.RegisterFailure("ana@tienda.co", now)
	store.Reset("ana@tienda.co")

	// Tras el reset, el siguiente fallo arranca de cero.
	store.RegisterFailure("ana@tienda.co", now.Add(time.Minute))
	assert.False(t, store.IsLocked("ana@tienda.co", now.Add(2*time.Minute)))
}

func TestLoginAttempts_ClavesIndependientes(t *testing.T) {
	store := NewLoginAttemptStore(1, 15*time.Minute)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	store.RegisterFailure("ana@tienda.co", now)
	assert.True(t, store.IsLocked("ana@tienda.co", now))
	assert.False(t, store.IsLocked("luis@tienda.co", now), "el bloqueo es por identificador")
}
