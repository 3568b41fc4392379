// Package module defines the contract shared by all chat command
// modules. Each module names its own trigger strings and is handed the
// full message text; the router selects a module by exact match on the
// first whitespace-delimited token.
package module

import (
	"context"
	"strings"
)

// Module is the interface every command handler implements. Modules are
// constructed once at startup and injected into the router's table; an
// inactive module is left out of the table and the capability listing
// entirely.
type Module interface {
	// Triggers returns the command signs that select this module.
	// The first trigger is the module's primary name in the
	// capability listing.
	Triggers() []string

	// Active reports whether the module should be registered at all.
	Active() bool

	// Description returns a one-line summary for the capability listing.
	Description() string

	// DetailDescription returns the long-form usage help.
	DetailDescription() string

	// Handle processes one message and returns the reply text.
	// The text still carries the leading trigger token.
	Handle(ctx context.Context, sender, text string) (string, error)
}

// DirectModule is a module that can additionally be invoked as the
// router's fallback, treating the entire text as input instead of
// stripping a leading trigger.
type DirectModule interface {
	Module

	// HandleDirect processes text that carried no recognized command.
	HandleDirect(ctx context.Context, sender, text string) (string, error)
}

// helpVariants are the suffixes a user may append to any trigger to ask
// for the module's detailed description.
var helpVariants = []string{"介绍", "帮助", "说明", "help", "功能"}

// HelpSet builds the case-insensitive set of help phrases for the given
// triggers, e.g. "百家乐 说明" or "baccarat help".
func HelpSet(triggers []string) map[string]bool {
	set := make(map[string]bool, len(triggers)*len(helpVariants))
	for _, trigger := range triggers {
		for _, variant := range helpVariants {
			set[strings.ToLower(trigger+" "+variant)] = true
		}
	}
	return set
}

// IsHelp reports whether content is one of the help phrases in set.
func IsHelp(set map[string]bool, content string) bool {
	return set[strings.ToLower(strings.TrimSpace(content))]
}
