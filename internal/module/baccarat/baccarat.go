// Package baccarat implements the baccarat game module. Each sender
// plays their own round against the banker, staking beans from the
// ledger.
package baccarat

import (
	"context"
	"fmt"
	"strings"

	"chat-game-bot/internal/deck"
	"chat-game-bot/internal/model"
	"chat-game-bot/internal/module"
	"chat-game-bot/internal/session"
)

// Ledger is the balance store the game stakes against. A debit is a
// credit with a negated amount; the caller checks the balance first,
// which is race-free because the dispatcher serializes each sender.
type Ledger interface {
	Balance(ctx context.Context, identity string) (int64, error)
	Credit(ctx context.Context, identity string, amount int64, txType, description string) error
}

type state int

const (
	stateIdle state = iota
	stateBetting
)

// Session is one sender's round state, owned exclusively by this module
// and only mutated under the sender's dispatcher lock.
type Session struct {
	state      state
	playerHand []deck.Card
	bankerHand []deck.Card
	shoe       *deck.Deck
	betSide    Side
	betAmount  int64
}

// Module is the baccarat command handler.
type Module struct {
	ledger   Ledger
	sessions *session.Store[*Session]
	help     map[string]bool
	newShoe  func() *deck.Deck
}

var triggers = []string{"百家乐", "baccarat", "下注", "停止"}

// New creates the baccarat module drawing from a shoe of the given
// number of decks.
func New(ledger Ledger, decks int) *Module {
	return &Module{
		ledger:   ledger,
		sessions: session.NewStore(func() *Session { return &Session{} }),
		help:     module.HelpSet(triggers),
		newShoe:  func() *deck.Deck { return deck.New(decks) },
	}
}

// Triggers returns the command signs that select this module.
func (m *Module) Triggers() []string {
	return triggers
}

// Active reports whether the module is registered.
func (m *Module) Active() bool {
	return true
}

// Description returns the capability listing summary.
func (m *Module) Description() string {
	return "百家乐游戏模块"
}

// DetailDescription returns the long-form usage help.
func (m *Module) DetailDescription() string {
	return strings.TrimSpace(`
一个简单的百家乐（Baccarat）游戏。你可以发送'百家乐'来开始游戏。
游戏开始后，你可以选择下注，玩家的目标是预测哪一方的手牌点数总和最接近9点。
A（Ace）：计为1点。2-9：按牌面数字计算点数。10、J、Q、K：计为0点。
将两张或三张牌的点数相加，得出的总点数个位数即为该手的点数。
如果庄家或闲家在前两张牌的总点数为8或9点，称为"自然胜利"，游戏立即结束，该方获胜。否则需要补牌。
闲家补牌规则：点数为0-5点必须补第三张牌，6或7点停牌。
庄家补牌规则（庄家当前点数/闲家第三张牌点数/庄家动作）：
0-2/不论/必须补牌
3/不为8/必须补牌
4/2-7/必须补牌
5/4-7/必须补牌
6/6或7/必须补牌
7及以上/不补牌/停牌
赔率：闲 1:1，庄 1:0.95（扣除5%佣金），和 1:8。`)
}

// Handle processes one baccarat command for sender.
func (m *Module) Handle(ctx context.Context, sender, text string) (string, error) {
	s := m.sessions.Get(sender)
	content := strings.TrimSpace(text)
	lower := strings.ToLower(content)

	if module.IsHelp(m.help, content) {
		return m.DetailDescription(), nil
	}

	switch {
	case strings.HasPrefix(lower, "百家乐") || strings.HasPrefix(lower, "baccarat"):
		return m.start(s), nil
	case strings.HasPrefix(content, "下注"):
		return m.bet(ctx, sender, s, content)
	case content == "停止":
		return m.stop(ctx, sender, s)
	default:
		return "无法识别的指令。你可以发送'百家乐'来开始游戏，或发送'下注 闲/庄/和 押注金额'来下注。", nil
	}
}

// start opens the betting phase with a fresh shuffled shoe.
func (m *Module) start(s *Session) string {
	if s.state == stateBetting {
		return "你已经在游戏中了！请先完成当前游戏。"
	}

	s.shoe = m.newShoe()
	s.playerHand = nil
	s.bankerHand = nil
	s.betSide = ""
	s.betAmount = 0
	s.state = stateBetting

	return "欢迎来到百家乐游戏！\n" +
		"请下注，你可以选择：'闲'、'庄'、'和'。\n" +
		"例如，输入'下注 闲 押1000'"
}

// bet stakes beans, deals the initial hands and resolves the round.
func (m *Module) bet(ctx context.Context, sender string, s *Session, content string) (string, error) {
	if s.state != stateBetting {
		return "你还没有开始游戏，请发送'百家乐'来开始游戏。", nil
	}

	parts := strings.Fields(content)
	if len(parts) < 3 {
		return "请输入下注选项和押注金额，例如：'下注 闲 押1000'。", nil
	}

	side, ok := ParseSide(parts[1])
	if !ok {
		return "无效的下注选项。请下注'闲'、'庄'或'和'。", nil
	}

	amount, err := module.ParseBetAmount(parts[2])
	if err != nil {
		return "请输入有效的押注金额，例如：'下注 闲 押1000'。", nil
	}
	if amount <= 0 {
		return "押注金额必须大于0！", nil
	}

	balance, err := m.ledger.Balance(ctx, sender)
	if err != nil {
		return "", fmt.Errorf("failed to check balance: %w", err)
	}
	if balance < amount {
		return fmt.Sprintf("你的豆子不足！当前豆子：%d，需要押注：%d", balance, amount), nil
	}

	if err := m.ledger.Credit(ctx, sender, -amount, model.TxTypeBaccaratBet, "百家乐下注"); err != nil {
		return "", fmt.Errorf("failed to debit stake: %w", err)
	}
	s.betSide = side
	s.betAmount = amount

	// Initial deal: two cards each.
	s.playerHand = append(s.playerHand, s.shoe.Draw(), s.shoe.Draw())
	s.bankerHand = append(s.bankerHand, s.shoe.Draw(), s.shoe.Draw())
	playerTotal := HandValue(s.playerHand)
	bankerTotal := HandValue(s.bankerHand)

	var b strings.Builder
	fmt.Fprintf(&b, "你下注的是：'%s' %d 豆子。\n", side, amount)
	fmt.Fprintf(&b, "已扣除你的押注金额 %d 豆子。\n", amount)
	fmt.Fprintf(&b, "闲家的手牌是：%s，点数为 %d。\n", deck.FormatHand(s.playerHand), playerTotal)
	fmt.Fprintf(&b, "庄家的手牌是：%s，点数为 %d。\n", deck.FormatHand(s.bankerHand), bankerTotal)

	// Natural: either initial hand at 8 or 9 resolves immediately.
	if playerTotal >= 8 || bankerTotal >= 8 {
		result, err := m.settle(ctx, sender, s, playerTotal, bankerTotal)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s\n游戏结束。", result)
		return b.String(), nil
	}

	// Player draws a third card on 0-5.
	playerDrew := false
	playerThird := 0
	if playerTotal <= 5 {
		third := s.shoe.Draw()
		s.playerHand = append(s.playerHand, third)
		playerDrew = true
		playerThird = CardValue(third)
		playerTotal = HandValue(s.playerHand)
		fmt.Fprintf(&b, "闲家抽了第三张牌：%s。\n", third)
	}

	if BankerDraws(bankerTotal, playerThird, playerDrew) {
		third := s.shoe.Draw()
		s.bankerHand = append(s.bankerHand, third)
		bankerTotal = HandValue(s.bankerHand)
		fmt.Fprintf(&b, "庄家抽了第三张牌：%s。\n", third)
	}

	fmt.Fprintf(&b, "闲家的最终手牌是：%s，点数为 %d。\n", deck.FormatHand(s.playerHand), playerTotal)
	fmt.Fprintf(&b, "庄家的最终手牌是：%s，点数为 %d。\n", deck.FormatHand(s.bankerHand), bankerTotal)

	result, err := m.settle(ctx, sender, s, playerTotal, bankerTotal)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "%s\n游戏结束。", result)
	return b.String(), nil
}

// settle compares totals, credits any payout and resets the session.
func (m *Module) settle(ctx context.Context, sender string, s *Session, playerTotal, bankerTotal int) (string, error) {
	winner := Winner(playerTotal, bankerTotal)
	bet, amount := s.betSide, s.betAmount

	s.state = stateIdle
	s.betAmount = 0

	payout := Payout(bet, amount, winner)
	if payout > 0 {
		if err := m.ledger.Credit(ctx, sender, payout, model.TxTypeBaccaratWin, "百家乐结算"); err != nil {
			return "", fmt.Errorf("failed to credit payout: %w", err)
		}
	}

	result := fmt.Sprintf("结果是：%s赢！", winner)
	switch {
	case winner == SideTie && bet != SideTie:
		result += fmt.Sprintf("你下注的是'%s'，与结果不同，押注金额 %d 豆子已返还。", bet, amount)
	case bet == winner:
		result += fmt.Sprintf("恭喜你，你赢了！你赢得了 %d 豆子。", payout-amount)
	default:
		result += fmt.Sprintf("很遗憾，你输了！失去了 %d 豆子。", amount)
	}
	return result, nil
}

// stop cancels the betting phase, refunding any staked amount.
func (m *Module) stop(ctx context.Context, sender string, s *Session) (string, error) {
	if s.state != stateBetting {
		return "你当前没有正在进行的游戏。", nil
	}

	s.state = stateIdle
	if s.betAmount > 0 {
		amount := s.betAmount
		s.betAmount = 0
		if err := m.ledger.Credit(ctx, sender, amount, model.TxTypeBaccaratWin, "百家乐退注"); err != nil {
			return "", fmt.Errorf("failed to refund stake: %w", err)
		}
		return fmt.Sprintf("游戏已停止，返还你的押注金额 %d 豆子。谢谢参与！", amount), nil
	}
	return "游戏已停止，谢谢参与！", nil
}
