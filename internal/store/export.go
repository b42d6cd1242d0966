package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVHeader is the column order written by WriteCSV.
var CSVHeader = []string{
	"sequence", "attempt_id", "timestamp", "student_id", "case_id",
	"student_diagnosis", "gold_diagnosis", "gold_source", "diagnosis_correct",
	"precision", "recall", "f1",
	"selected_features", "missing_features", "extra_features",
	"confusable_dx", "justification",
}

// WriteCSV writes records as CSV with a header row. Feature lists are joined
// with ";".
func WriteCSV(w io.Writer, records []AttemptRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.Sequence, 10),
			r.AttemptID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.StudentID,
			r.CaseID,
			r.StudentDiagnosis,
			r.GoldDiagnosis,
			r.GoldSource,
			strconv.FormatBool(r.DiagnosisCorrect),
			formatScore(r.Precision),
			formatScore(r.Recall),
			formatScore(r.F1),
			strings.Join(r.SelectedFeatures, ";"),
			strings.Join(r.MissingFeatures, ";"),
			strings.Join(r.ExtraFeatures, ";"),
			r.ConfusableDx,
			r.Justification,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Sequence, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
