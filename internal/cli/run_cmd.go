package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mabdulhai/studyflow/internal/chat"
	"github.com/mabdulhai/studyflow/internal/cli/formatter"
	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/schema"
	"github.com/mabdulhai/studyflow/internal/service"
	"github.com/mabdulhai/studyflow/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const consentText = "You are invited to take part in a research study on AI-assisted writing. " +
	"Your questionnaire answers, your essay, and (if enabled) your conversation with the " +
	"assistant will be recorded and analyzed. Participation is voluntary and you may stop " +
	"at any time before submitting."

func newRunCmd(app *App) *cobra.Command {
	var participantID, assignmentID, projectID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one participant through the study",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("run requires an interactive terminal")
			}

			sess := session.NewSession(app.Study, app.Records)
			sess.SetCorrelation(domain.Correlation{
				ParticipantID: participantID,
				AssignmentID:  assignmentID,
				ProjectID:     projectID,
			})

			return runStudy(app, sess)
		},
	}

	cmd.Flags().StringVar(&participantID, "participant-id", "", "External participant identifier")
	cmd.Flags().StringVar(&assignmentID, "assignment-id", "", "External assignment identifier")
	cmd.Flags().StringVar(&projectID, "project-id", "", "External project identifier")

	return cmd
}

// runStudy drives the session through its phases until the record is
// submitted or the participant backs out.
func runStudy(app *App, sess *session.Session) error {
	for {
		switch sess.Phase() {
		case domain.PhaseConsent:
			agreed, err := collectConsent()
			if err != nil {
				return err
			}
			if !agreed {
				fmt.Println(formatter.Dim("Consent declined. Nothing was recorded."))
				return nil
			}
			if err := sess.Agree(); err != nil {
				return err
			}

		case domain.PhasePreStudy:
			if err := collectResponses(app.Study.PreStudy, sess.PreStudy(), sess.Start); err != nil {
				return err
			}

		case domain.PhaseWaitingForDone:
			if err := collectDone(app.Study, sess); err != nil {
				return err
			}

		case domain.PhaseTask:
			if err := runTask(app, sess); err != nil {
				return err
			}
			if sess.Phase() == domain.PhaseTask {
				// Participant quit the task view without finishing.
				fmt.Println(formatter.Dim("Session abandoned. Nothing was recorded."))
				return nil
			}

		case domain.PhasePostStudy:
			done, err := collectPostStudy(app, sess)
			if err != nil || done {
				return err
			}

		default:
			return nil
		}
	}
}

func collectConsent() (bool, error) {
	fmt.Println(formatter.RenderBox("Consent", consentText))
	var agreed bool
	if err := confirmForm("Do you agree to participate?", &agreed).Run(); err != nil {
		return false, err
	}
	return agreed, nil
}

// collectResponses runs a questionnaire form, applies the answers, and
// invokes the phase transition. A refused transition re-presents the
// form with the missing questions called out; everything already
// answered is preserved.
func collectResponses(ps schema.PhaseSchema, rs *domain.ResponseSet, advance func() error) error {
	fmt.Println(formatter.Header(ps.Title))
	q := newQuestionnaire(ps)

	for {
		if err := q.form().Run(); err != nil {
			return err
		}
		if err := q.apply(rs); err != nil {
			return err
		}

		err := advance()
		if err == nil {
			return nil
		}
		var verr *session.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fmt.Println(missingNotice(ps, verr.Missing))
	}
}

func collectDone(cfg session.Config, sess *session.Session) error {
	msg := "Please complete the writing task now."
	if cfg.ReferenceDocURL != "" {
		msg += "\n\nWrite your essay in the shared document:\n" + cfg.ReferenceDocURL
	}
	fmt.Println(formatter.RenderBox("Writing task", msg))

	for {
		var done bool
		if err := confirmForm("Have you finished the writing task?", &done).Run(); err != nil {
			return err
		}
		if done {
			return sess.ConfirmDone()
		}
	}
}

func runTask(app *App, sess *session.Session) error {
	var exchange *chat.Exchange
	if sess.Conversation() != nil && app.Gateway != nil {
		exchange = chat.NewExchange(sess.Conversation(), app.Gateway)
	}

	model := newTaskModel(sess, exchange, app.Study.EssayPrompt)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running task view: %w", err)
	}
	return nil
}

// collectPostStudy gathers the final questionnaire and submits the
// record, offering a retry when only the write failed. It reports
// done=true when the run command should exit.
func collectPostStudy(app *App, sess *session.Session) (done bool, err error) {
	ctx := context.Background()
	submit := func() error {
		stop := formatter.StartSpinner("Saving your session...")
		_, serr := sess.Submit(ctx)
		stop()
		return serr
	}

	if err := collectResponses(app.Study.PostStudy, sess.PostStudy(), func() error {
		serr := submit()
		var perr *service.PersistenceError
		if errors.As(serr, &perr) {
			return nil // handled below via retry loop
		}
		return serr
	}); err != nil {
		return true, err
	}

	// Retry loop for a failed write. The session retains the record,
	// so each retry targets the same stored row.
	for sess.Phase() == domain.PhasePostStudy {
		fmt.Println(formatter.Errorf("Saving failed. Your answers are still held in memory."))
		var retry bool
		if err := confirmForm("Try saving again?", &retry).Run(); err != nil {
			return true, err
		}
		if !retry {
			return true, fmt.Errorf("session record was not saved")
		}
		if serr := submit(); serr != nil {
			var perr *service.PersistenceError
			if !errors.As(serr, &perr) {
				return true, serr
			}
		}
	}

	fmt.Println(formatter.StyleGreen.Render("✔ Thank you! Your session has been recorded."))
	return true, nil
}
