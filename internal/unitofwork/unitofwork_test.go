package unitofwork_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbpg "github.com/juan-009/authguard/integration/database/pg"
	"github.com/juan-009/authguard/internal/unitofwork"
)

// fakeTx embeds the pgx.Tx interface (nil) so it satisfies the type without
// reimplementing every method; only Commit/Rollback are exercised by
// UnitOfWork and are overridden below.
type fakeTx struct {
	pgx.Tx
	committed, rolledBack bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakePool struct {
	tx *fakeTx
}

func (p *fakePool) Begin(_ context.Context) (pgx.Tx, error) {
	return p.tx, nil
}

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	uow := unitofwork.New(&fakePool{tx: tx})

	err := uow.Within(context.Background(), func(ctx context.Context) error {
		_, ok := dbpg.TxFromContext(ctx)
		assert.True(t, ok, "fn's context must carry the opened transaction")
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	uow := unitofwork.New(&fakePool{tx: tx})
	boom := errors.New("boom")

	err := uow.Within(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestUnitOfWork_NestedCallReusesOuterTransaction(t *testing.T) {
	tx := &fakeTx{}
	uow := unitofwork.New(&fakePool{tx: tx})

	var innerSawSameTx bool
	err := uow.Within(context.Background(), func(ctx context.Context) error {
		outerTx, _ := dbpg.TxFromContext(ctx)
		return uow.Within(ctx, func(innerCtx context.Context) error {
			innerTx, ok := dbpg.TxFromContext(innerCtx)
			innerSawSameTx = ok && innerTx == outerTx
			return nil
		})
	})

	require.NoError(t, err)
	assert.True(t, innerSawSameTx, "nested Within must reuse the outer transaction")
	assert.True(t, tx.committed, "only the outermost Within commits")
}
