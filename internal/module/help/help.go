// Package help implements the capability listing module. It reads the
// description file the router writes at startup and replies with one
// line per registered module.
package help

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Module answers 介绍/功能/help with the capability listing.
type Module struct {
	path string

	once         sync.Once
	descriptions map[string]string
	loadErr      error
}

var triggers = []string{"介绍", "功能", "help", "功能说明", "说明", "所有功能"}

// New creates the help module reading descriptions from path. The file
// is loaded lazily on first use so the router can write it first.
func New(path string) *Module {
	return &Module{path: path}
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
	return "输出所有功能的介绍"
}

// DetailDescription returns the long-form usage help.
func (m *Module) DetailDescription() string {
	return "输出所有功能的介绍"
}

// Handle replies with the capability listing, one module per line.
func (m *Module) Handle(_ context.Context, _, _ string) (string, error) {
	m.once.Do(m.load)
	if m.loadErr != nil || len(m.descriptions) == 0 {
		return "抱歉，未能加载功能描述。", nil
	}

	names := make([]string, 0, len(m.descriptions))
	for name := range m.descriptions {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s：%s", name, m.descriptions[name]))
	}
	return strings.Join(lines, "\n"), nil
}

func (m *Module) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.loadErr = fmt.Errorf("failed to read description file: %w", err)
		return
	}
	if err := json.Unmarshal(data, &m.descriptions); err != nil {
		m.loadErr = fmt.Errorf("failed to parse description file: %w", err)
	}
}
