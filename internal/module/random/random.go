// Package random implements the random number module.
package random

import (
	"context"
	"fmt"
	"math/rand"
)

// Module replies with a random integer between 1 and 100.
type Module struct{}

var triggers = []string{"随机数", "生成随机数"}

// New creates the random number module.
func New() *Module {
	return &Module{}
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
	return "生成随机数功能"
}

// DetailDescription returns the long-form usage help.
func (m *Module) DetailDescription() string {
	return "生成一个1到100之间的随机整数并返回。"
}

// Handle replies with a fresh random number.
func (m *Module) Handle(_ context.Context, _, _ string) (string, error) {
	return fmt.Sprintf("你生成的随机数是：%d", rand.Intn(100)+1), nil
}
