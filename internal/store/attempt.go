package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "student_id", "case_id",
	"student_diagnosis", "gold_diagnosis", "gold_source", "diagnosis_correct",
	"feature_precision", "feature_recall", "feature_f1",
	"selected_features", "missing_features", "extra_features",
	"confusable_dx", "justification",
}

// attemptRepo implements AttemptRepo on ent's SQL builder and the global
// sequence counter.
type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *attemptRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptEventData) (int64, error) {
	if data.AttemptID == "" {
		return 0, fmt.Errorf("append attempt: missing attempt id")
	}
	selected, err := encodeList(data.SelectedFeatures)
	if err != nil {
		return 0, err
	}
	missing, err := encodeList(data.MissingFeatures)
	if err != nil {
		return 0, err
	}
	extra, err := encodeList(data.ExtraFeatures)
	if err != nil {
		return 0, err
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert(attemptsTableName).
		Columns(attemptColumns[1:]...).
		Values(
			seqNum, ts.UTC(), data.AttemptID, data.StudentID, data.CaseID,
			data.StudentDiagnosis, data.GoldDiagnosis, data.GoldSource, data.DiagnosisCorrect,
			data.Precision, data.Recall, data.F1,
			selected, missing, extra,
			data.ConfusableDx, data.Justification,
		).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save attempt event: %w", err)
	}
	return seqNum, nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	b := r.builder()
	sel := b.Select(attemptColumns...).From(b.Table(attemptsTableName))
	applyFilters(sel, opts.StudentID)
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	sel.OrderBy("sequence")
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		rec, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) AttemptStats(ctx context.Context, studentID string) (*AttemptStats, error) {
	stats := &AttemptStats{StudentID: studentID, ByDiagnosis: map[string]int{}}
	b := r.builder()

	agg := b.Select(entsql.Count("*"), entsql.Sum("diagnosis_correct"), entsql.Avg("feature_f1")).
		From(b.Table(attemptsTableName))
	applyFilters(agg, studentID)
	var (
		correct sql.NullInt64
		meanF1  sql.NullFloat64
	)
	if err := r.queryRow(ctx, agg, &stats.Attempts, &correct, &meanF1); err != nil {
		return nil, fmt.Errorf("attempt stats: %w", err)
	}
	if stats.Attempts == 0 {
		return stats, nil
	}
	stats.Correct = int(correct.Int64)
	stats.MeanF1 = meanF1.Float64

	last := b.Select("timestamp").From(b.Table(attemptsTableName))
	applyFilters(last, studentID)
	last.OrderBy(entsql.Desc("sequence")).Limit(1)
	if err := r.queryRow(ctx, last, &stats.LastAttempt); err != nil {
		return nil, fmt.Errorf("last attempt: %w", err)
	}

	byDx := b.Select("gold_diagnosis", entsql.Count("*")).From(b.Table(attemptsTableName))
	applyFilters(byDx, studentID)
	byDx.GroupBy("gold_diagnosis")
	query, args := byDx.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("attempts by diagnosis: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			dx string
			n  int
		)
		if err := rows.Scan(&dx, &n); err != nil {
			return nil, fmt.Errorf("scan diagnosis count: %w", err)
		}
		stats.ByDiagnosis[dx] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attempts by diagnosis: %w", err)
	}
	return stats, nil
}

func (r *attemptRepo) queryRow(ctx context.Context, sel *entsql.Selector, dest ...any) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	if err := rows.Scan(dest...); err != nil {
		return err
	}
	return rows.Err()
}

func applyFilters(sel *entsql.Selector, studentID string) {
	if studentID != "" {
		sel.Where(entsql.EQ("student_id", studentID))
	}
}

func scanAttempt(rows *entsql.Rows) (AttemptRecord, error) {
	var (
		rec                      AttemptRecord
		selected, missing, extra string
	)
	err := rows.Scan(
		&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.AttemptID, &rec.StudentID, &rec.CaseID,
		&rec.StudentDiagnosis, &rec.GoldDiagnosis, &rec.GoldSource, &rec.DiagnosisCorrect,
		&rec.Precision, &rec.Recall, &rec.F1,
		&selected, &missing, &extra,
		&rec.ConfusableDx, &rec.Justification,
	)
	if err != nil {
		return rec, fmt.Errorf("scan attempt: %w", err)
	}
	if rec.SelectedFeatures, err = decodeList(selected); err != nil {
		return rec, err
	}
	if rec.MissingFeatures, err = decodeList(missing); err != nil {
		return rec, err
	}
	if rec.ExtraFeatures, err = decodeList(extra); err != nil {
		return rec, err
	}
	return rec, nil
}

// Lists are stored as JSON arrays. A nil list is written as [] so readers
// never have to tell null from empty.
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
