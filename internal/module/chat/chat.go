// Package chat implements the conversational fallback module backed by
// an OpenAI-compatible chat completion API. It is invoked explicitly
// with the 聊天 trigger or directly for any message no other module
// claims.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"chat-game-bot/internal/config"
)

// completer is the slice of the OpenAI client the module uses, split
// out so tests can stub the API.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Module is the chat command handler. It keeps a rolling conversation
// window per sender and evicts the oldest sender once maxUsers is
// reached.
type Module struct {
	client     completer
	model      string
	maxWindows int
	maxUsers   int

	mu       sync.Mutex
	contexts map[string][]openai.ChatCompletionMessage
	order    []string
}

var triggers = []string{"聊天"}

// New creates the chat module from the chat config section.
func New(cfg config.ChatConfig) *Module {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return newWithClient(openai.NewClientWithConfig(clientCfg), cfg)
}

func newWithClient(client completer, cfg config.ChatConfig) *Module {
	return &Module{
		client:     client,
		model:      cfg.Model,
		maxWindows: cfg.MaxWindows,
		maxUsers:   cfg.MaxUsers,
		contexts:   make(map[string][]openai.ChatCompletionMessage),
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
	return "与 ChatGPT 进行聊天互动"
}

// DetailDescription returns the long-form usage help.
func (m *Module) DetailDescription() string {
	return "【聊天功能说明】\n" +
		"您可以通过发送“聊天”作为开头，再加上您的消息，与 ChatGPT 进行对话。\n" +
		"例如：“聊天 今天的天气怎么样？”\n" +
		"ChatGPT 将会回复您的问题。"
}

// Handle processes a 聊天-prefixed message, stripping the trigger.
func (m *Module) Handle(ctx context.Context, sender, text string) (string, error) {
	message := strings.TrimSpace(text)
	for _, sign := range triggers {
		if rest, ok := strings.CutPrefix(message, sign); ok {
			message = strings.TrimSpace(rest)
			break
		}
	}
	if message == "" {
		return "请在命令后添加您想说的话，例如：'聊天 你好！'", nil
	}
	return m.chat(ctx, sender, message), nil
}

// HandleDirect processes a message that carried no recognized command,
// treating the whole text as conversation input.
func (m *Module) HandleDirect(ctx context.Context, sender, text string) (string, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return "请在命令后添加您想说的话，例如：'聊天 你好！'", nil
	}
	return m.chat(ctx, sender, message), nil
}

// chat appends the message to the sender's window, calls the completion
// API and records the assistant reply. API failures are reported to the
// sender rather than escalated; the conversation window keeps the
// user message so a retry carries it.
func (m *Module) chat(ctx context.Context, sender, message string) string {
	window := m.appendMessage(sender, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: window,
	})
	if err != nil {
		return fmt.Sprintf("抱歉，%s，发生错误：%s", sender, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Sprintf("抱歉，%s，发生错误：%s", sender, "empty completion response")
	}

	reply := resp.Choices[0].Message.Content
	m.appendMessage(sender, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reply,
	})
	return reply
}

// appendMessage adds one message to the sender's window, trimming it to
// the last maxWindows exchanges and evicting the oldest sender when the
// user cap is hit. It returns a copy of the window for the API call.
func (m *Module) appendMessage(sender string, msg openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contexts[sender]; !ok {
		if len(m.order) >= m.maxUsers {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.contexts, oldest)
		}
		m.order = append(m.order, sender)
	}

	window := append(m.contexts[sender], msg)
	if limit := m.maxWindows * 2; len(window) > limit {
		window = window[len(window)-limit:]
	}
	m.contexts[sender] = window

	out := make([]openai.ChatCompletionMessage, len(window))
	copy(out, window)
	return out
}
