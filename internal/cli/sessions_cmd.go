package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mabdulhai/studyflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and export recorded sessions",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsShowCmd(app),
		newSessionsExportCmd(app),
		newSessionsRemoveCmd(app),
	)

	return cmd
}

func newSessionsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Records.List(context.Background())
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Println("No sessions recorded.")
				return nil
			}

			headers := []string{"ID", "CREATED", "PARTICIPANT", "TURNS", "ESSAY WORDS"}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				participant := s.ParticipantID
				if participant == "" {
					participant = formatter.Dim("--")
				}
				rows = append(rows, []string{
					formatter.TruncID(s.SessionID),
					formatter.HumanTimestamp(s.CreatedAt),
					participant,
					fmt.Sprintf("%d", s.TurnCount),
					fmt.Sprintf("%d", s.EssayWords),
				})
			}

			fmt.Print(formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newSessionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a recorded session in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Records.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatRecordDetail(rec, app.Study.PreStudy, app.Study.PostStudy))
			return nil
		},
	}
}

func newSessionsExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a recorded session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Records.ExportJSON(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Printf("Exported session %s to %s\n", args[0], outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write to file instead of stdout")

	return cmd
}

func newSessionsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Records.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed session %s\n", args[0])
			return nil
		},
	}
}
