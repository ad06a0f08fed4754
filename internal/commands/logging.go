package commands

import (
	"strings"

	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

const commandModuleRoot = "md2adapt.commands"

// CommandLogger returns a logger for the handlers of one command module,
// tagged with the component and module names.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
