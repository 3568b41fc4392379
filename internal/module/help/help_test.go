package help

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_ListsDescriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "description.json")
	content := `{"百家乐": "百家乐游戏模块", "领豆子": "可以每周领取一次豆子"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m := New(path)
	reply, err := m.Handle(context.Background(), "alice", "介绍")
	require.NoError(t, err)
	assert.Contains(t, reply, "百家乐：百家乐游戏模块")
	assert.Contains(t, reply, "领豆子：可以每周领取一次豆子")
}

func TestHandle_MissingFile(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "missing.json"))

	reply, err := m.Handle(context.Background(), "alice", "介绍")
	require.NoError(t, err)
	assert.Equal(t, "抱歉，未能加载功能描述。", reply)
}

func TestHandle_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "description.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	m := New(path)
	reply, err := m.Handle(context.Background(), "alice", "功能")
	require.NoError(t, err)
	assert.Equal(t, "抱歉，未能加载功能描述。", reply)
}
