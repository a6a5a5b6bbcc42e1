package sweeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinkard/sundris/internal/engine"
	"github.com/kinkard/sundris/internal/sweeper"
)

func TestRunNow_SettlesExpiredOrders(t *testing.T) {
	eng, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	ctx := context.Background()
	alice, err := eng.Login(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, eng.Deposit(ctx, alice.ID, "item1", 10))
	require.NoError(t, eng.Deposit(ctx, alice.ID, engine.FundsItem, 100))
	require.NoError(t, eng.PlaceSellOrder(ctx, engine.Immediate, alice.ID, "item1", 1, 10,
		time.Now().Add(-time.Hour).Unix()))

	sw := sweeper.New(eng, time.Hour)
	sw.RunNow()

	orders, err := eng.ViewSellOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	items, err := eng.ViewItems(ctx, alice.ID)
	require.NoError(t, err)
	for _, h := range items {
		if h.Name == "item1" {
			assert.Equal(t, int64(10), h.Quantity)
		}
	}
}

func TestStartStop_RunsOnTickerAndShutsDownCleanly(t *testing.T) {
	eng, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	ctx := context.Background()
	alice, err := eng.Login(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, eng.Deposit(ctx, alice.ID, "item1", 10))
	require.NoError(t, eng.Deposit(ctx, alice.ID, engine.FundsItem, 100))
	require.NoError(t, eng.PlaceSellOrder(ctx, engine.Immediate, alice.ID, "item1", 1, 10,
		time.Now().Add(-time.Hour).Unix()))

	sw := sweeper.New(eng, 20*time.Millisecond)
	sw.Start()
	defer sw.Stop()

	require.Eventually(t, func() bool {
		orders, err := eng.ViewSellOrders(ctx)
		return err == nil && len(orders) == 0
	}, time.Second, 10*time.Millisecond)
}
