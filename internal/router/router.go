// Package router maps a message's leading command token to a handler
// module, falling back to the conversational module when no token
// matches.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chat-game-bot/internal/module"
)

// Router holds the command table built once at startup from the
// registered modules.
type Router struct {
	table        map[string]module.Module
	fallback     module.DirectModule
	descriptions map[string]string
}

// New builds a Router from the fallback module and the remaining
// modules. Inactive modules are excluded from the table and from the
// capability listing; duplicate triggers are a wiring mistake and fail
// construction.
func New(fallback module.DirectModule, modules ...module.Module) (*Router, error) {
	r := &Router{
		table:        make(map[string]module.Module),
		fallback:     fallback,
		descriptions: make(map[string]string),
	}

	if fallback == nil {
		return nil, fmt.Errorf("fallback module is required")
	}

	all := make([]module.Module, 0, len(modules)+1)
	all = append(all, fallback)
	all = append(all, modules...)

	for _, m := range all {
		if m == nil {
			return nil, fmt.Errorf("cannot register nil module")
		}
		if !m.Active() {
			continue
		}
		triggers := m.Triggers()
		if len(triggers) == 0 {
			return nil, fmt.Errorf("module %q has no triggers", m.Description())
		}
		for _, trigger := range triggers {
			if trigger == "" {
				return nil, fmt.Errorf("module %q has an empty trigger", m.Description())
			}
			if _, exists := r.table[trigger]; exists {
				return nil, fmt.Errorf("duplicate trigger %q", trigger)
			}
			r.table[trigger] = m
		}
		r.descriptions[triggers[0]] = m.Description()
	}

	return r, nil
}

// Route dispatches one message. The first whitespace-delimited token is
// matched exactly against the command table; on a miss the whole text
// goes to the fallback module in direct mode.
func (r *Router) Route(ctx context.Context, sender, text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) > 0 {
		if m, ok := r.table[fields[0]]; ok {
			return m.Handle(ctx, sender, text)
		}
	}
	return r.fallback.HandleDirect(ctx, sender, text)
}

// Commands returns all registered triggers, sorted.
func (r *Router) Commands() []string {
	commands := make([]string, 0, len(r.table))
	for trigger := range r.table {
		commands = append(commands, trigger)
	}
	sort.Strings(commands)
	return commands
}

// Descriptions returns the capability listing: each active module's
// primary trigger mapped to its one-line description.
func (r *Router) Descriptions() map[string]string {
	out := make(map[string]string, len(r.descriptions))
	for k, v := range r.descriptions {
		out[k] = v
	}
	return out
}

// WriteDescriptions writes the capability listing as a flat JSON map,
// for consumption by the help module.
func (r *Router) WriteDescriptions(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(r.descriptions, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptions: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write descriptions: %w", err)
	}
	return nil
}
