package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mabdulhai/studyflow/internal/db"
	"github.com/mabdulhai/studyflow/internal/domain"
)

// SQLiteRecordRepo implements RecordRepo using a SQLite database.
// Response sets are stored as JSON columns; conversation turns live in
// a child table keyed by (record_id, seq).
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo. The DBTX may be
// a *sql.DB or a transaction from the unit of work.
func NewSQLiteRecordRepo(dbtx db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: dbtx}
}

func (r *SQLiteRecordRepo) Put(ctx context.Context, rec *domain.SessionRecord) error {
	prestudy, err := json.Marshal(rec.PreStudy)
	if err != nil {
		return fmt.Errorf("encoding prestudy responses: %w", err)
	}
	poststudy, err := json.Marshal(rec.PostStudy)
	if err != nil {
		return fmt.Errorf("encoding poststudy responses: %w", err)
	}

	query := `INSERT INTO session_records
		(id, created_at, participant_id, assignment_id, project_id, prestudy, poststudy, essay_text, reference_doc, has_conversation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			participant_id = excluded.participant_id,
			assignment_id = excluded.assignment_id,
			project_id = excluded.project_id,
			prestudy = excluded.prestudy,
			poststudy = excluded.poststudy,
			essay_text = excluded.essay_text,
			reference_doc = excluded.reference_doc,
			has_conversation = excluded.has_conversation`
	_, err = r.db.ExecContext(ctx, query,
		rec.SessionID,
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.Correlation.ParticipantID,
		rec.Correlation.AssignmentID,
		rec.Correlation.ProjectID,
		string(prestudy),
		string(poststudy),
		rec.EssayText,
		rec.ReferenceDocURL,
		boolToInt(rec.Conversation != nil),
	)
	if err != nil {
		return fmt.Errorf("upserting session record: %w", err)
	}

	// Replace turns wholesale so a retried Put converges on the same rows.
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM conversation_turns WHERE record_id = ?`, rec.SessionID); err != nil {
		return fmt.Errorf("clearing conversation turns: %w", err)
	}
	for _, turn := range rec.Conversation {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO conversation_turns (record_id, seq, role, text) VALUES (?, ?, ?, ?)`,
			rec.SessionID, turn.Seq, string(turn.Role), turn.Text,
		); err != nil {
			return fmt.Errorf("inserting conversation turn %d: %w", turn.Seq, err)
		}
	}
	return nil
}

func (r *SQLiteRecordRepo) GetByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	query := `SELECT id, created_at, participant_id, assignment_id, project_id, prestudy, poststudy, essay_text, reference_doc, has_conversation
		FROM session_records WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, sessionID)

	var rec domain.SessionRecord
	var createdAtStr, prestudyJSON, poststudyJSON string
	var hasConversation int

	err := row.Scan(
		&rec.SessionID, &createdAtStr,
		&rec.Correlation.ParticipantID, &rec.Correlation.AssignmentID, &rec.Correlation.ProjectID,
		&prestudyJSON, &poststudyJSON, &rec.EssayText, &rec.ReferenceDocURL, &hasConversation,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session record %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session record: %w", err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(prestudyJSON), &rec.PreStudy); err != nil {
		return nil, fmt.Errorf("decoding prestudy responses: %w", err)
	}
	if err := json.Unmarshal([]byte(poststudyJSON), &rec.PostStudy); err != nil {
		return nil, fmt.Errorf("decoding poststudy responses: %w", err)
	}

	if intToBool(hasConversation) {
		turns, err := r.loadTurns(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		rec.Conversation = turns
	}
	return &rec, nil
}

func (r *SQLiteRecordRepo) loadTurns(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, role, text FROM conversation_turns WHERE record_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing conversation turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var turn domain.Turn
		var role string
		if err := rows.Scan(&turn.Seq, &role, &turn.Text); err != nil {
			return nil, fmt.Errorf("scanning conversation turn: %w", err)
		}
		turn.Role = domain.Role(role)
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversation turns: %w", err)
	}
	return turns, nil
}

func (r *SQLiteRecordRepo) List(ctx context.Context) ([]RecordSummary, error) {
	query := `SELECT s.id, s.created_at, s.participant_id, s.essay_text,
			(SELECT COUNT(*) FROM conversation_turns t WHERE t.record_id = s.id)
		FROM session_records s ORDER BY s.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing session records: %w", err)
	}
	defer rows.Close()

	var summaries []RecordSummary
	for rows.Next() {
		var s RecordSummary
		var createdAtStr, essay string
		if err := rows.Scan(&s.SessionID, &createdAtStr, &s.ParticipantID, &essay, &s.TurnCount); err != nil {
			return nil, fmt.Errorf("scanning record summary: %w", err)
		}
		s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		s.EssayWords = len(strings.Fields(essay))
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record summaries: %w", err)
	}
	return summaries, nil
}

func (r *SQLiteRecordRepo) Delete(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_records WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session record %s: %w", sessionID, ErrNotFound)
	}
	return nil
}
