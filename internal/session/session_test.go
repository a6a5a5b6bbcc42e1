package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinkard/sundris/internal/engine"
	"github.com/kinkard/sundris/internal/session"
)

func newTestSession(t *testing.T, username string) (*session.Session, *engine.Engine) {
	eng, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	s := session.New(eng)
	reply, err := s.Login(context.Background(), username)
	require.NoError(t, err)
	assert.Equal(t, "Successfully logged in as "+username, reply)
	return s, eng
}

func TestSession_PingWhoamiHelp(t *testing.T) {
	s, _ := newTestSession(t, "alice")
	ctx := context.Background()

	assert.Equal(t, "pong", s.Handle(ctx, "ping"))
	assert.Equal(t, "alice", s.Handle(ctx, "whoami"))
	assert.Contains(t, s.Handle(ctx, "help"), "Commands:")
}

func TestSession_DepositAndViewItems(t *testing.T) {
	s, _ := newTestSession(t, "alice")
	ctx := context.Background()

	reply := s.Handle(ctx, "deposit sword 3")
	assert.Equal(t, "Successfully deposited 3 sword(s)", reply)

	reply = s.Handle(ctx, "view_items")
	assert.Contains(t, reply, "(funds, 0)")
	assert.Contains(t, reply, "(sword, 3)")
}

func TestSession_WithdrawInsufficient_FailsWithExactMessage(t *testing.T) {
	s, _ := newTestSession(t, "alice")
	ctx := context.Background()

	reply := s.Handle(ctx, "withdraw sword 1")
	assert.Equal(t, "Failed to process request: Not enough sword(s) to withdraw", reply)
}

func TestSession_WithdrawSuccess_UsesSicSpelling(t *testing.T) {
	s, _ := newTestSession(t, "alice")
	ctx := context.Background()

	require.Equal(t, "Successfully deposited 5 arrow(s)", s.Handle(ctx, "deposit arrow 5"))
	reply := s.Handle(ctx, "withdraw arrow 5")
	assert.Equal(t, "Successfully withdrawed 5 arrow(s)", reply)
}

func TestSession_SellAndBuyImmediate(t *testing.T) {
	seller, eng := newTestSession(t, "alice")
	buyer := session.New(eng)
	ctx := context.Background()
	_, err := buyer.Login(ctx, "bob")
	require.NoError(t, err)

	require.Contains(t, seller.Handle(ctx, "deposit item1 10"), "Successfully")
	require.Contains(t, seller.Handle(ctx, "deposit funds 100"), "Successfully")
	require.Contains(t, buyer.Handle(ctx, "deposit funds 50"), "Successfully")

	reply := seller.Handle(ctx, "sell item1 1 20")
	assert.Equal(t, "Successfully placed immediate sell order for 1 item1(s)", reply)

	list := seller.Handle(ctx, "view_sell_orders")
	assert.Contains(t, list, "#1")
	assert.Contains(t, list, "alice is selling 1 item1(s) for 20 funds")

	reply = buyer.Handle(ctx, "buy 1")
	assert.Equal(t, "Successfully bought order #1", reply)
}

func TestSession_SellAuctionAndBid(t *testing.T) {
	seller, eng := newTestSession(t, "alice")
	buyer := session.New(eng)
	ctx := context.Background()
	_, err := buyer.Login(ctx, "bob")
	require.NoError(t, err)

	require.Contains(t, seller.Handle(ctx, "deposit item1 10"), "Successfully")
	require.Contains(t, seller.Handle(ctx, "deposit funds 100"), "Successfully")
	require.Contains(t, buyer.Handle(ctx, "deposit funds 50"), "Successfully")

	reply := seller.Handle(ctx, "sell auction item1 1 10")
	assert.Equal(t, "Successfully placed auction sell order for 1 item1(s)", reply)

	list := seller.Handle(ctx, "view_sell_orders")
	assert.Contains(t, list, "on auction")

	reply = buyer.Handle(ctx, "buy 1 20")
	assert.Equal(t, "Successfully placed bid of 20 on order #1", reply)
}

func TestSession_SelfBuyForbidden(t *testing.T) {
	seller, _ := newTestSession(t, "alice")
	ctx := context.Background()

	require.Contains(t, seller.Handle(ctx, "deposit item1 10"), "Successfully")
	require.Contains(t, seller.Handle(ctx, "deposit funds 100"), "Successfully")
	require.Contains(t, seller.Handle(ctx, "sell item1 1 20"), "Successfully")

	reply := seller.Handle(ctx, "buy 1")
	assert.Contains(t, reply, "Failed to process request:")
}

func TestSession_UnknownCommand(t *testing.T) {
	s, _ := newTestSession(t, "alice")
	reply := s.Handle(context.Background(), "fly")
	assert.Equal(t, "Failed to process request: unknown command 'fly'", reply)
}

func TestSession_LoginRejectsEmptyUsername(t *testing.T) {
	eng, err := engine.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	s := session.New(eng)
	_, err = s.Login(context.Background(), "   ")
	assert.Error(t, err)
}
