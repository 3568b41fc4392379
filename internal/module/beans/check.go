package beans

import (
	"context"
	"fmt"
)

// CheckModule reports a sender's own bean balance.
type CheckModule struct {
	ledger Ledger
}

var checkTriggers = []string{"查豆子", "我的豆子"}

// NewCheck creates the balance check module.
func NewCheck(ledger Ledger) *CheckModule {
	return &CheckModule{ledger: ledger}
}

// Triggers returns the command signs that select this module.
func (m *CheckModule) Triggers() []string {
	return checkTriggers
}

// Active reports whether the module is registered.
func (m *CheckModule) Active() bool {
	return true
}

// Description returns the capability listing summary.
func (m *CheckModule) Description() string {
	return "查询自己当前的豆子数量。"
}

// DetailDescription returns the long-form usage help.
func (m *CheckModule) DetailDescription() string {
	return "【查询豆子功能说明】\n" +
		"您可以通过发送“查询豆子”或“我的豆子”来查看您当前拥有的豆子数量。\n" +
		"豆子可用于参与平台的各种活动，快来看看您拥有多少豆子吧！"
}

// Handle processes one balance query for sender.
func (m *CheckModule) Handle(ctx context.Context, sender, _ string) (string, error) {
	balance, err := m.ledger.Balance(ctx, sender)
	if err != nil {
		return "", fmt.Errorf("failed to look up balance: %w", err)
	}
	return fmt.Sprintf("%s，您当前的豆子总数是：%d。", sender, balance), nil
}
