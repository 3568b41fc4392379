// Package blackjack implements the 21-point game module. Each sender
// plays a hand against the dealer, optionally staking beans from the
// ledger.
package blackjack

import (
	"context"
	"fmt"
	"strings"

	"chat-game-bot/internal/deck"
	"chat-game-bot/internal/model"
	"chat-game-bot/internal/module"
	"chat-game-bot/internal/session"
)

// Ledger is the balance store the game stakes against.
type Ledger interface {
	Balance(ctx context.Context, identity string) (int64, error)
	Credit(ctx context.Context, identity string, amount int64, txType, description string) error
}

// Session is one sender's hand state. betAmount is zero when the sender
// started without a stake.
type Session struct {
	inGame     bool
	playerHand []deck.Card
	dealerHand []deck.Card
	shoe       *deck.Deck
	betAmount  int64
}

// Module is the blackjack command handler.
type Module struct {
	ledger   Ledger
	sessions *session.Store[*Session]
	help     map[string]bool
	newShoe  func() *deck.Deck
}

var triggers = []string{"21点", "blackjack", "要牌", "停牌"}

// New creates the blackjack module drawing from a shoe of the given
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
	return "21点游戏"
}

// DetailDescription returns the long-form usage help.
func (m *Module) DetailDescription() string {
	return strings.TrimSpace(`
一个简单的21点（Blackjack）游戏。你可以发送'开始21点'来开始游戏，'要牌'来获取一张新牌，'停牌'来结束当前回合。
玩家与庄家比较牌面点数，最接近21点而不爆牌（超过21点）的玩家获胜。庄家在16点或以下必须继续要牌，17点或以上则停牌。
A：两种方式，可以作为11点（软手），亦作为1点（硬手）。2-10：牌面点数即其数值。J、Q、K：每张牌的点数为10点。`)
}

// Handle processes one blackjack command for sender.
func (m *Module) Handle(ctx context.Context, sender, text string) (string, error) {
	s := m.sessions.Get(sender)
	content := strings.TrimSpace(text)
	lower := strings.ToLower(content)

	if module.IsHelp(m.help, content) {
		return m.DetailDescription(), nil
	}

	switch {
	case strings.HasPrefix(lower, "21点") || strings.HasPrefix(lower, "blackjack"):
		return m.start(ctx, sender, s, content)
	case content == "要牌":
		return m.hit(ctx, sender, s)
	case content == "停牌":
		return m.stand(ctx, sender, s)
	default:
		return "无法识别的指令。你可以发送'21点'或'21点 押注金额'来开始游戏，'要牌'来获取一张新牌，'停牌'来结束当前回合。", nil
	}
}

// start deals a fresh hand, optionally staking the amount given after
// the trigger.
func (m *Module) start(ctx context.Context, sender string, s *Session, content string) (string, error) {
	// An explicit amount is validated even when it is zero; only a bare
	// start plays an unstaked hand.
	parts := strings.Fields(content)
	staked := len(parts) >= 2
	var bet int64
	if staked {
		amount, err := module.ParseBetAmount(parts[1])
		if err != nil {
			return "请输入有效的押注金额，例如：'21点 押1000'，或直接发送'21点'开始游戏。", nil
		}
		bet = amount
	}

	if s.inGame {
		return "你已经在游戏中了！", nil
	}

	if staked {
		balance, err := m.ledger.Balance(ctx, sender)
		if err != nil {
			return "", fmt.Errorf("failed to check balance: %w", err)
		}
		if balance < bet {
			return fmt.Sprintf("你的豆子不足！当前豆子：%d，需要押注：%d", balance, bet), nil
		}
		if bet <= 0 {
			return "押注金额必须大于0！", nil
		}
		if err := m.ledger.Credit(ctx, sender, -bet, model.TxTypeBlackjackBet, "21点下注"); err != nil {
			return "", fmt.Errorf("failed to debit stake: %w", err)
		}
	}

	s.shoe = m.newShoe()
	s.playerHand = nil
	s.dealerHand = nil
	s.inGame = true
	s.betAmount = bet

	s.playerHand = append(s.playerHand, s.shoe.Draw(), s.shoe.Draw())
	// Dealer takes two cards; only the first is shown until the stand.
	s.dealerHand = append(s.dealerHand, s.shoe.Draw(), s.shoe.Draw())
	playerTotal := HandTotal(s.playerHand)

	var b strings.Builder
	if bet != 0 {
		potential := bet * 2 * 95 / 100
		fmt.Fprintf(&b, "游戏开始！你押注了 %d 豆子，可赢取 %d 豆子（扣除5%%抽水）。\n", bet, potential)
	} else {
		b.WriteString("游戏开始！\n")
	}
	fmt.Fprintf(&b, "你的手牌是：%s，总点数：%d。\n", deck.FormatHand(s.playerHand), playerTotal)
	fmt.Fprintf(&b, "庄家明牌：%s。\n", s.dealerHand[0])

	// A natural 21 on the deal wins outright.
	if playerTotal == 21 {
		win, err := m.payOut(ctx, sender, s)
		if err != nil {
			return "", err
		}
		b.WriteString("恭喜你，Blackjack！你赢了！\n")
		b.WriteString(win)
		b.WriteString("游戏结束。")
		m.reset(s)
		return b.String(), nil
	}

	b.WriteString("你可以选择'要牌'或者'停牌'。")
	return b.String(), nil
}

// hit draws one card for the player, settling on bust or 21.
func (m *Module) hit(ctx context.Context, sender string, s *Session) (string, error) {
	if !s.inGame {
		return "你还没有开始游戏，请发送'21点'或'21点 押注金额'来开始游戏。", nil
	}

	drawn := s.shoe.Draw()
	s.playerHand = append(s.playerHand, drawn)
	playerTotal := HandTotal(s.playerHand)

	var b strings.Builder
	fmt.Fprintf(&b, "你抽到了 %s，你的手牌是：%s，总点数 %d。\n", drawn, deck.FormatHand(s.playerHand), playerTotal)

	switch {
	case playerTotal > 21:
		b.WriteString("爆掉了！你输了！\n")
		if s.betAmount > 0 {
			fmt.Fprintf(&b, "你失去了 %d 豆子。\n", s.betAmount)
		}
		b.WriteString("游戏结束。")
		m.reset(s)
	case playerTotal == 21:
		win, err := m.payOut(ctx, sender, s)
		if err != nil {
			return "", err
		}
		b.WriteString("恭喜你，Blackjack！你赢了！\n")
		b.WriteString(win)
		b.WriteString("游戏结束。")
		m.reset(s)
	default:
		b.WriteString("你可以继续选择'要牌'或者'停牌'。")
	}
	return b.String(), nil
}

// stand reveals the dealer's hand, draws it to 17 and settles.
func (m *Module) stand(ctx context.Context, sender string, s *Session) (string, error) {
	if !s.inGame {
		return "你还没有开始游戏，请发送'21点'或'21点 押注金额'来开始游戏。", nil
	}

	playerTotal := HandTotal(s.playerHand)
	dealerTotal := HandTotal(s.dealerHand)
	for dealerTotal < 17 {
		s.dealerHand = append(s.dealerHand, s.shoe.Draw())
		dealerTotal = HandTotal(s.dealerHand)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "你的手牌是：%s，总点数 %d。\n", deck.FormatHand(s.playerHand), playerTotal)
	fmt.Fprintf(&b, "庄家的手牌是：%s，总点数 %d。\n", deck.FormatHand(s.dealerHand), dealerTotal)

	switch {
	case dealerTotal > 21 || playerTotal > dealerTotal:
		b.WriteString("恭喜你，你赢了！\n")
		win, err := m.payOut(ctx, sender, s)
		if err != nil {
			return "", err
		}
		b.WriteString(win)
	case playerTotal < dealerTotal:
		b.WriteString("很遗憾，你输了！\n")
		if s.betAmount > 0 {
			fmt.Fprintf(&b, "你失去了 %d 豆子。\n", s.betAmount)
		}
	default:
		b.WriteString("平局！\n")
		if s.betAmount > 0 {
			if err := m.ledger.Credit(ctx, sender, s.betAmount, model.TxTypeBlackjackWin, "21点退注"); err != nil {
				return "", fmt.Errorf("failed to refund stake: %w", err)
			}
			fmt.Fprintf(&b, "你的押注 %d 豆子已返还。\n", s.betAmount)
		}
	}
	b.WriteString("游戏结束。")
	m.reset(s)
	return b.String(), nil
}

// payOut credits a staked win at 2x minus the 5% cut and returns the
// winnings line, or an empty string for an unstaked hand.
func (m *Module) payOut(ctx context.Context, sender string, s *Session) (string, error) {
	if s.betAmount <= 0 {
		return "", nil
	}
	winnings := s.betAmount * 2 * 95 / 100
	if err := m.ledger.Credit(ctx, sender, winnings, model.TxTypeBlackjackWin, "21点结算"); err != nil {
		return "", fmt.Errorf("failed to credit winnings: %w", err)
	}
	return fmt.Sprintf("你赢得了 %d 豆子（扣除5%%抽水）。\n", winnings), nil
}

func (m *Module) reset(s *Session) {
	s.inGame = false
	s.betAmount = 0
	s.playerHand = nil
	s.dealerHand = nil
}
