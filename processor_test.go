package emvqr_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aayushgelal/emvqr"
)

func TestProcessor_EncodeBatchKeepsOrder(t *testing.T) {
	enc, err := emvqr.NewEncoder(testMerchant())
	require.NoError(t, err)

	txs := make([]emvqr.Transaction, 20)
	for i := range txs {
		txs[i] = emvqr.DynamicTransaction(decimal.NewFromInt(int64(i+1)), fmt.Sprintf("BILL-%d", i))
	}

	p := emvqr.NewProcessor(enc, emvqr.WithConcurrency(3))
	results, err := p.EncodeBatch(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, results, len(txs))

	for i, payload := range results {
		want, err := enc.Encode(txs[i])
		require.NoError(t, err)
		require.Equal(t, want, payload)
	}
}

func TestProcessor_EncodeBatchReportsLowestFailure(t *testing.T) {
	enc, err := emvqr.NewEncoder(testMerchant())
	require.NoError(t, err)

	txs := []emvqr.Transaction{
		emvqr.StaticTransaction("ok"),
		emvqr.DynamicTransaction(decimal.NewFromInt(-5), "negative"),
		emvqr.StaticTransaction("ok"),
		emvqr.DynamicTransaction(decimal.NewFromInt(-7), "negative"),
	}

	var (
		mu     sync.Mutex
		failed []int
	)
	p := emvqr.NewProcessor(enc, emvqr.WithErrorHandler(func(index int, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, index)
	}))

	results, err := p.EncodeBatch(context.Background(), txs)
	require.Nil(t, results)
	require.ErrorIs(t, err, emvqr.ErrValidationFailed)
	require.Contains(t, err.Error(), "transaction 1:")
	require.ElementsMatch(t, []int{1, 3}, failed)
}

func TestProcessor_EncodeBatchCancelled(t *testing.T) {
	enc, err := emvqr.NewEncoder(testMerchant())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := emvqr.NewProcessor(enc).EncodeBatch(ctx, []emvqr.Transaction{emvqr.StaticTransaction("")})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, results)
}

func TestProcessor_MinimumConcurrency(t *testing.T) {
	enc, err := emvqr.NewEncoder(testMerchant())
	require.NoError(t, err)

	results, err := emvqr.NewProcessor(enc, emvqr.WithConcurrency(0)).
		EncodeBatch(context.Background(), []emvqr.Transaction{emvqr.StaticTransaction("a"), emvqr.StaticTransaction("b")})
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = emvqr.NewProcessor(enc).EncodeBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, results)
}
