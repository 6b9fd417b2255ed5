package postgres

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

// testPool abre una base real con DATABASE_URL y aplica las migraciones; sin la variable, omite el test.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	m, err := NewMigrator(pool)
	require.NoError(t, err)
	_, err = m.Up(ctx)
	require.NoError(t, err)
	return pool
}

func newTestInvitation(t *testing.T, pool *pgxpool.Pool, now time.Time, ttl time.Duration) *entity.InvitationCode {
	t.Helper()
	inv := &entity.InvitationCode{
		ID:        uuid.NewString(),
		Code:      uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	require.NoError(t, NewInvitationRepository(pool).Create(context.Background(), inv))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM invitation_codes WHERE id = $1`, inv.ID)
	})
	return inv
}

func TestInvitationRepo_RedeemConcurrenteUnSoloGanador(t *testing.T) {
	pool := testPool(t)
	repo := NewInvitationRepository(pool)
	now := time.Now().UTC()
	inv := newTestInvitation(t, pool, now, time.Minute)

	const workers = 16
	var (
		wg   sync.WaitGroup
		won  atomic.Int32
		errs = make(chan error, workers)
		gate = make(chan struct{})
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-gate
			ok, err := repo.Redeem(context.Background(), inv.Code, now)
			if err != nil {
				errs <- err
				return
			}
			if ok {
				won.Add(1)
			}
		}()
	}
	close(gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, won.Load())

	ok, err := repo.Redeem(context.Background(), inv.Code, now)
	require.NoError(t, err)
	assert.False(t, ok, "un código usado no se vuelve a canjear")
}

func TestInvitationRepo_RedeemVencidoODesconocido(t *testing.T) {
	pool := testPool(t)
	repo := NewInvitationRepository(pool)
	now := time.Now().UTC()
	inv := newTestInvitation(t, pool, now.Add(-time.Hour), time.Minute)

	ok, err := repo.Redeem(context.Background(), inv.Code, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Redeem(context.Background(), uuid.NewString(), now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvitationRepo_CodigoDuplicado(t *testing.T) {
	pool := testPool(t)
	now := time.Now().UTC()
	inv := newTestInvitation(t, pool, now, time.Minute)

	dup := &entity.InvitationCode{ID: uuid.NewString(), Code: inv.Code, CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	err := NewInvitationRepository(pool).Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
