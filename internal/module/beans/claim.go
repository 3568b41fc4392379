// Package beans holds the bean economy modules: the weekly claim, the
// balance check and the leaderboard. All three talk to the same ledger
// service.
package beans

import (
	"context"
	"fmt"
	"time"

	"chat-game-bot/internal/model"
)

// Ledger is the bean store the economy modules read and claim against.
type Ledger interface {
	Balance(ctx context.Context, identity string) (int64, error)
	ClaimWeekly(ctx context.Context, identity string) (bool, int64, error)
	NextClaimTime(ctx context.Context, identity string) (time.Time, error)
	TopN(ctx context.Context, n int) ([]model.Account, error)
}

// ClaimModule hands out the weekly bean allowance.
type ClaimModule struct {
	ledger Ledger
	reward int64
}

var claimTriggers = []string{"领豆子", "我要领豆子"}

// NewClaim creates the weekly claim module paying out the given reward.
func NewClaim(ledger Ledger, reward int64) *ClaimModule {
	return &ClaimModule{ledger: ledger, reward: reward}
}

// Triggers returns the command signs that select this module.
func (m *ClaimModule) Triggers() []string {
	return claimTriggers
}

// Active reports whether the module is registered.
func (m *ClaimModule) Active() bool {
	return true
}

// Description returns the capability listing summary.
func (m *ClaimModule) Description() string {
	return "可以每周领取一次豆子"
}

// DetailDescription returns the long-form usage help.
func (m *ClaimModule) DetailDescription() string {
	return fmt.Sprintf("【领取豆子功能说明】\n"+
		"您可以通过发送“领豆子”或“我要领豆子”来领取豆子。\n"+
		"每位用户每周只能领取一次，每次可获得 %d 个豆子。\n"+
		"豆子可以用于参与平台的各种活动，快来领取吧！", m.reward)
}

// Handle processes one claim request for sender.
func (m *ClaimModule) Handle(ctx context.Context, sender, _ string) (string, error) {
	claimed, balance, err := m.ledger.ClaimWeekly(ctx, sender)
	if err != nil {
		return "", fmt.Errorf("failed to claim weekly beans: %w", err)
	}

	if claimed {
		return fmt.Sprintf("🎉 恭喜，%s，您已成功领取 %d 个豆子！\n当前豆子总数：%d。", sender, m.reward, balance), nil
	}

	next, err := m.ledger.NextClaimTime(ctx, sender)
	if err != nil {
		return "", fmt.Errorf("failed to look up next claim time: %w", err)
	}
	return fmt.Sprintf("抱歉，%s，您距离上次领取不足一周，无法领取豆子。\n下次可领取时间：%s。",
		sender, next.Format("2006-01-02 15:04:05")), nil
}
