package beans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-game-bot/internal/model"
)

type fakeLedger struct {
	balances  map[string]int64
	claimable bool
	nextClaim time.Time
	top       []model.Account
}

func (f *fakeLedger) Balance(_ context.Context, identity string) (int64, error) {
	return f.balances[identity], nil
}

func (f *fakeLedger) ClaimWeekly(_ context.Context, identity string) (bool, int64, error) {
	if !f.claimable {
		return false, f.balances[identity], nil
	}
	f.balances[identity] += 10000
	return true, f.balances[identity], nil
}

func (f *fakeLedger) NextClaimTime(_ context.Context, _ string) (time.Time, error) {
	return f.nextClaim, nil
}

func (f *fakeLedger) TopN(_ context.Context, n int) ([]model.Account, error) {
	if len(f.top) > n {
		return f.top[:n], nil
	}
	return f.top, nil
}

func TestClaimModule_Success(t *testing.T) {
	ledger := &fakeLedger{balances: map[string]int64{"alice": 500}, claimable: true}
	m := NewClaim(ledger, 10000)

	reply, err := m.Handle(context.Background(), "alice", "领豆子")
	require.NoError(t, err)
	assert.Contains(t, reply, "恭喜，alice，您已成功领取 10000 个豆子")
	assert.Contains(t, reply, "当前豆子总数：10500")
}

func TestClaimModule_TooSoon(t *testing.T) {
	next := time.Date(2025, 3, 8, 12, 30, 0, 0, time.Local)
	ledger := &fakeLedger{balances: map[string]int64{"alice": 500}, nextClaim: next}
	m := NewClaim(ledger, 10000)

	reply, err := m.Handle(context.Background(), "alice", "领豆子")
	require.NoError(t, err)
	assert.Contains(t, reply, "您距离上次领取不足一周")
	assert.Contains(t, reply, "下次可领取时间：2025-03-08 12:30:00")
	assert.Equal(t, int64(500), ledger.balances["alice"])
}

func TestCheckModule(t *testing.T) {
	ledger := &fakeLedger{balances: map[string]int64{"alice": 1234}}
	m := NewCheck(ledger)

	reply, err := m.Handle(context.Background(), "alice", "查豆子")
	require.NoError(t, err)
	assert.Equal(t, "alice，您当前的豆子总数是：1234。", reply)
}

func TestCheckModule_UnseenSenderHasZero(t *testing.T) {
	m := NewCheck(&fakeLedger{balances: map[string]int64{}})

	reply, err := m.Handle(context.Background(), "bob", "查豆子")
	require.NoError(t, err)
	assert.Contains(t, reply, "豆子总数是：0")
}

func TestChartModule(t *testing.T) {
	ledger := &fakeLedger{top: []model.Account{
		{Identity: "alice", Balance: 5000},
		{Identity: "bob", Balance: 3000},
	}}
	m := NewChart(ledger)

	reply, err := m.Handle(context.Background(), "carol", "排行榜")
	require.NoError(t, err)
	assert.Contains(t, reply, "📊 当前豆子排行榜：")
	assert.Contains(t, reply, "第 1 名：alice，豆子数量：5000")
	assert.Contains(t, reply, "第 2 名：bob，豆子数量：3000")
}

func TestChartModule_Empty(t *testing.T) {
	m := NewChart(&fakeLedger{})

	reply, err := m.Handle(context.Background(), "carol", "排行榜")
	require.NoError(t, err)
	assert.Contains(t, reply, "当前还没有用户领取豆子")
}
