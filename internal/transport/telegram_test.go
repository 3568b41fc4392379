package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestStripMention(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		bot       string
		stripped  string
		mentioned bool
	}{
		{"leading mention", "@gamebot 百家乐", "gamebot", "百家乐", true},
		{"trailing mention", "下注 闲 押100 @gamebot", "gamebot", "下注 闲 押100", true},
		{"mention only", "@gamebot", "gamebot", "", true},
		{"no mention", "百家乐", "gamebot", "百家乐", false},
		{"other mention", "@otherbot 百家乐", "gamebot", "@otherbot 百家乐", false},
		{"empty bot name", "@gamebot 百家乐", "", "@gamebot 百家乐", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stripped, mentioned := StripMention(tt.text, tt.bot)
			assert.Equal(t, tt.mentioned, mentioned)
			assert.Equal(t, tt.stripped, stripped)
		})
	}
}

func TestSenderName(t *testing.T) {
	tests := []struct {
		name string
		user *tele.User
		want string
	}{
		{"username preferred", &tele.User{Username: "alice", FirstName: "Alice"}, "alice"},
		{"first name fallback", &tele.User{FirstName: "Alice"}, "Alice"},
		{"full name fallback", &tele.User{FirstName: "Alice", LastName: "Liddell"}, "Alice Liddell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, senderName(tt.user))
		})
	}
}
