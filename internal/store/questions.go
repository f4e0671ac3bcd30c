package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nicojapas/interview-trainer/internal/quiz"
)

// Question type discriminator values.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeFreeForm       = "free_form"
)

// ListGroups returns every subtopic with its questions, grouped the way
// the questions endpoint serves them: subtopics ordered by (topic name,
// subtopic name), questions in insertion order, options by option index.
func (s *Store) ListGroups(ctx context.Context) ([]quiz.SubtopicGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.description, t.name
		FROM subtopics s
		JOIN topics t ON t.id = s.topic_id
		ORDER BY t.name, s.name`)
	if err != nil {
		return nil, fmt.Errorf("list subtopics: %w", err)
	}
	defer rows.Close()

	var groups []quiz.SubtopicGroup
	var subIDs []int64
	for rows.Next() {
		var id int64
		var g quiz.SubtopicGroup
		if err := rows.Scan(&id, &g.Subtopic, &g.Description, &g.Topic); err != nil {
			return nil, err
		}
		groups = append(groups, g)
		subIDs = append(subIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questions, err := s.questionsBySubtopic(ctx)
	if err != nil {
		return nil, err
	}

	for i := range groups {
		if qs := questions[subIDs[i]]; qs != nil {
			groups[i].Questions = qs
		} else {
			groups[i].Questions = []quiz.Question{}
		}
	}
	return groups, nil
}

func (s *Store) questionsBySubtopic(ctx context.Context) (map[int64][]quiz.Question, error) {
	options, err := s.optionsByQuestion(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, external_id, subtopic_id, question, question_type,
		       correct_answer, correct_index, explanation, learn
		FROM questions
		ORDER BY subtopic_id, id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]quiz.Question)
	for rows.Next() {
		var rowID, subID int64
		var qtype string
		var q quiz.Question
		if err := rows.Scan(&rowID, &q.ID, &subID, &q.Prompt, &qtype,
			&q.Correct, &q.Answer, &q.Explanation, &q.Learn); err != nil {
			return nil, err
		}
		if qtype == TypeMultipleChoice {
			q.Options = options[rowID]
		} else {
			q.Answer = 0
		}
		out[subID] = append(out[subID], q)
	}
	return out, rows.Err()
}

func (s *Store) optionsByQuestion(ctx context.Context) (map[int64][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, option_text
		FROM options
		ORDER BY question_id, option_index`)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var qid int64
		var text string
		if err := rows.Scan(&qid, &text); err != nil {
			return nil, err
		}
		out[qid] = append(out[qid], text)
	}
	return out, rows.Err()
}

// Learn returns the cached long-form explanation for a question, empty
// when none is cached or the question is unknown.
func (s *Store) Learn(ctx context.Context, externalID string) (string, error) {
	var learn string
	err := s.db.QueryRowContext(ctx,
		`SELECT learn FROM questions WHERE external_id = ?`, externalID).Scan(&learn)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query learn: %w", err)
	}
	return learn, nil
}

// SaveLearn caches a generated explanation on the question. Unknown ids
// are a no-op: the cache write must never fail an explanation request.
func (s *Store) SaveLearn(ctx context.Context, externalID, learn string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE questions SET learn = ? WHERE external_id = ?`, learn, externalID)
	if err != nil {
		return fmt.Errorf("save learn: %w", err)
	}
	return nil
}

// Import inserts the grouped question bank in one transaction. Topics
// and subtopics are upserted; a question whose external id already
// exists is replaced, keeping any cached learn text it had.
func (s *Store) Import(ctx context.Context, groups []quiz.SubtopicGroup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, g := range groups {
		topicID, err := upsertTopic(ctx, tx, g.Topic)
		if err != nil {
			return err
		}
		subID, err := upsertSubtopic(ctx, tx, topicID, g.Subtopic, g.Description)
		if err != nil {
			return err
		}
		for _, q := range g.Questions {
			if err := insertQuestion(ctx, tx, subID, q); err != nil {
				return fmt.Errorf("question %s: %w", q.ID, err)
			}
		}
	}

	return tx.Commit()
}

func upsertTopic(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO topics (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return 0, fmt.Errorf("upsert topic %s: %w", name, err)
	}
	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM topics WHERE name = ?`, name).Scan(&id)
	return id, err
}

func upsertSubtopic(ctx context.Context, tx *sql.Tx, topicID int64, name, desc string) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO subtopics (topic_id, name, description) VALUES (?, ?, ?)
		ON CONFLICT (topic_id, name) DO UPDATE SET description = excluded.description`,
		topicID, name, desc)
	if err != nil {
		return 0, fmt.Errorf("upsert subtopic %s: %w", name, err)
	}
	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM subtopics WHERE topic_id = ? AND name = ?`, topicID, name).Scan(&id)
	return id, err
}

func insertQuestion(ctx context.Context, tx *sql.Tx, subID int64, q quiz.Question) error {
	qtype := TypeFreeForm
	if q.MultipleChoice() {
		qtype = TypeMultipleChoice
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO questions
		  (external_id, subtopic_id, question, question_type, correct_answer, correct_index, explanation, learn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (external_id) DO UPDATE SET
		  subtopic_id = excluded.subtopic_id,
		  question = excluded.question,
		  question_type = excluded.question_type,
		  correct_answer = excluded.correct_answer,
		  correct_index = excluded.correct_index,
		  explanation = excluded.explanation`,
		q.ID, subID, q.Prompt, qtype, q.Correct, q.Answer, q.Explanation, q.Learn)
	if err != nil {
		return err
	}

	// LastInsertId is unreliable after an ON CONFLICT update, so look
	// the row id up by external id instead.
	var rowID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM questions WHERE external_id = ?`, q.ID).Scan(&rowID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE question_id = ?`, rowID); err != nil {
		return err
	}
	for i, opt := range q.Options {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO options (question_id, option_index, option_text) VALUES (?, ?, ?)`,
			rowID, i, opt); err != nil {
			return err
		}
	}
	return nil
}
