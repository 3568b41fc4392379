package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-game-bot/internal/config"
)

type fakeCompleter struct {
	reply    string
	err      error
	requests []openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply}},
		},
	}, nil
}

func testConfig() config.ChatConfig {
	return config.ChatConfig{Model: "gpt-3.5-turbo", MaxWindows: 5, MaxUsers: 100}
}

func TestHandle_StripsTrigger(t *testing.T) {
	api := &fakeCompleter{reply: "你好！"}
	m := newWithClient(api, testConfig())

	reply, err := m.Handle(context.Background(), "alice", "聊天 你好")
	require.NoError(t, err)
	assert.Equal(t, "你好！", reply)

	require.Len(t, api.requests, 1)
	require.Len(t, api.requests[0].Messages, 1)
	assert.Equal(t, "你好", api.requests[0].Messages[0].Content)
	assert.Equal(t, "gpt-3.5-turbo", api.requests[0].Model)
}

func TestHandle_EmptyMessage(t *testing.T) {
	api := &fakeCompleter{reply: "hi"}
	m := newWithClient(api, testConfig())

	reply, err := m.Handle(context.Background(), "alice", "聊天")
	require.NoError(t, err)
	assert.Contains(t, reply, "请在命令后添加您想说的话")
	assert.Empty(t, api.requests)
}

func TestHandleDirect_KeepsConversationWindow(t *testing.T) {
	api := &fakeCompleter{reply: "ok"}
	m := newWithClient(api, testConfig())
	ctx := context.Background()

	_, err := m.HandleDirect(ctx, "alice", "第一句")
	require.NoError(t, err)
	_, err = m.HandleDirect(ctx, "alice", "第二句")
	require.NoError(t, err)

	// Second request carries user, assistant, user.
	require.Len(t, api.requests, 2)
	msgs := api.requests[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[0].Role)
	assert.Equal(t, "第一句", msgs[0].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[1].Role)
	assert.Equal(t, "第二句", msgs[2].Content)
}

func TestHandleDirect_WindowTrimmed(t *testing.T) {
	api := &fakeCompleter{reply: "ok"}
	cfg := testConfig()
	cfg.MaxWindows = 2
	m := newWithClient(api, cfg)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := m.HandleDirect(ctx, "alice", fmt.Sprintf("消息%d", i))
		require.NoError(t, err)
	}

	last := api.requests[len(api.requests)-1]
	assert.LessOrEqual(t, len(last.Messages), cfg.MaxWindows*2)
	assert.Equal(t, "消息9", last.Messages[len(last.Messages)-1].Content)
}

func TestHandleDirect_EvictsOldestSender(t *testing.T) {
	api := &fakeCompleter{reply: "ok"}
	cfg := testConfig()
	cfg.MaxUsers = 3
	m := newWithClient(api, cfg)
	ctx := context.Background()

	for _, sender := range []string{"u1", "u2", "u3", "u4"} {
		_, err := m.HandleDirect(ctx, sender, "hello")
		require.NoError(t, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Len(t, m.contexts, 3)
	assert.NotContains(t, m.contexts, "u1")
	assert.Contains(t, m.contexts, "u4")
}

func TestHandleDirect_APIErrorReportedToSender(t *testing.T) {
	api := &fakeCompleter{err: errors.New("connection refused")}
	m := newWithClient(api, testConfig())

	reply, err := m.HandleDirect(context.Background(), "alice", "你好")
	require.NoError(t, err)
	assert.Contains(t, reply, "抱歉，alice，发生错误：")
	assert.Contains(t, reply, "connection refused")
}
