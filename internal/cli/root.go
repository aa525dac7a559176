package cli

import (
	"github.com/mabdulhai/studyflow/internal/assistant"
	"github.com/mabdulhai/studyflow/internal/service"
	"github.com/mabdulhai/studyflow/internal/session"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands need.
type App struct {
	Records service.RecordService
	Study   session.Config

	// Gateway is nil when the assistant is disabled.
	Gateway assistant.Gateway

	// IsInteractive reports whether stdin is a terminal. The run
	// command refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studyflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studyflow",
		Short: "Run research study sessions and manage their records",
	}

	root.AddCommand(
		newRunCmd(app),
		newSessionsCmd(app),
	)

	return root
}
