package commands

import (
	"github.com/spf13/cobra"

	"itd/internal/storage"
	"itd/internal/ui"
)

// ReportCommand handles the report command
type ReportCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(st storage.Storage, viewer ui.Viewer) *ReportCommand {
	return &ReportCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := rc.storage.Load()
	if err != nil {
		return err
	}

	return rc.viewer.View(results)
}
