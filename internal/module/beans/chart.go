package beans

import (
	"context"
	"fmt"
	"strings"
)

// chartSize is how many accounts the leaderboard shows.
const chartSize = 10

// ChartModule renders the bean leaderboard.
type ChartModule struct {
	ledger Ledger
}

var chartTriggers = []string{"排行榜", "查看排行榜"}

// NewChart creates the leaderboard module.
func NewChart(ledger Ledger) *ChartModule {
	return &ChartModule{ledger: ledger}
}

// Triggers returns the command signs that select this module.
func (m *ChartModule) Triggers() []string {
	return chartTriggers
}

// Active reports whether the module is registered.
func (m *ChartModule) Active() bool {
	return true
}

// Description returns the capability listing summary.
func (m *ChartModule) Description() string {
	return "查看豆子排行榜，显示前 10 名用户的豆子数量。"
}

// DetailDescription returns the long-form usage help.
func (m *ChartModule) DetailDescription() string {
	return "【豆子排行榜功能说明】\n" +
		"您可以通过发送“排行榜”或“查看排行榜”来查看豆子排行榜。\n" +
		"排行榜显示拥有豆子数量最多的前 10 名用户。\n" +
		"快来领取豆子，争当排行榜第一名吧！"
}

// Handle renders the current leaderboard.
func (m *ChartModule) Handle(ctx context.Context, _, _ string) (string, error) {
	top, err := m.ledger.TopN(ctx, chartSize)
	if err != nil {
		return "", fmt.Errorf("failed to load leaderboard: %w", err)
	}
	if len(top) == 0 {
		return "当前还没有用户领取豆子，快来成为第一个领取豆子的人吧！", nil
	}

	lines := make([]string, 0, len(top)+1)
	lines = append(lines, "📊 当前豆子排行榜：")
	for i, account := range top {
		lines = append(lines, fmt.Sprintf("第 %d 名：%s，豆子数量：%d", i+1, account.Identity, account.Balance))
	}
	return strings.Join(lines, "\n"), nil
}
