// Package assessment turns a learner submission into scored feedback: it
// resolves the gold diagnosis, compares the selected features with the
// features the taxonomy expects, looks for the most confusable alternative
// and appends the attempt to the log.
package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/dxtutor/internal/caselib"
	"github.com/abhisek/dxtutor/internal/retrieval"
	"github.com/abhisek/dxtutor/internal/scoring"
	"github.com/abhisek/dxtutor/internal/store"
	"github.com/abhisek/dxtutor/internal/taxonomy"
)

// Options configures a Service. Graph and Retriever are required.
type Options struct {
	Graph       *taxonomy.Graph
	Retriever   *retrieval.Retriever
	Confusables scoring.Confusables

	// Attempts receives every assessed attempt. Nil disables the log.
	Attempts store.AttemptRepo
	Logger   *slog.Logger

	TopK             int
	MinJustification int

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service assesses submissions. It holds only read-only data and is safe
// for concurrent use; serialization of the attempt log is the repo's job.
type Service struct {
	graph       *taxonomy.Graph
	retriever   *retrieval.Retriever
	library     *caselib.Library
	confusables scoring.Confusables
	attempts    store.AttemptRepo
	logger      *slog.Logger

	topK             int
	minJustification int
	now              func() time.Time
}

// NewService creates an assessment service.
func NewService(opts Options) (*Service, error) {
	if opts.Graph == nil {
		return nil, fmt.Errorf("assessment: graph is required")
	}
	if opts.Retriever == nil {
		return nil, fmt.Errorf("assessment: retriever is required")
	}
	s := &Service{
		graph:            opts.Graph,
		retriever:        opts.Retriever,
		library:          opts.Retriever.Library(),
		confusables:      opts.Confusables,
		attempts:         opts.Attempts,
		logger:           opts.Logger,
		topK:             opts.TopK,
		minJustification: opts.MinJustification,
		now:              opts.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.topK <= 0 {
		s.topK = retrieval.DefaultK
	}
	if s.minJustification < 0 {
		s.minJustification = 0
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// MinJustification is the configured minimum justification length.
func (s *Service) MinJustification() int { return s.minJustification }

// ResolveGold finds the answer key for a reference and a note. The first
// match wins:
//
//  1. ref names a scenario with an explicit gold diagnosis
//  2. ref names a library case; its diagnosis is the gold
//  3. the top retrieved case for the note (or the scenario's note), when
//     its similarity is above zero
//
// Otherwise ErrNoGold is returned. A resolved id missing from the taxonomy
// yields ErrUnknownDiagnosis.
func (s *Service) ResolveGold(ref, note string) (Gold, error) {
	ref = strings.TrimSpace(ref)
	if ref != "" {
		if sc, ok := s.library.Scenario(ref); ok {
			if sc.GoldDiagnosisID != "" {
				return s.checkGold(Gold{DiagnosisID: sc.GoldDiagnosisID, Source: GoldFromScenario, CaseID: sc.ID})
			}
			if strings.TrimSpace(note) == "" {
				note = sc.Note
			}
		} else if c, ok := s.library.Case(ref); ok {
			return s.checkGold(Gold{DiagnosisID: c.DiagnosisID, Source: GoldFromCase, CaseID: c.ID})
		}
	}

	if hit, ok := s.retriever.Best(note); ok {
		return s.checkGold(Gold{
			DiagnosisID: hit.Case.DiagnosisID,
			Source:      GoldFromRetrieval,
			CaseID:      hit.Case.ID,
			Similarity:  hit.Similarity,
		})
	}

	if ref != "" {
		return Gold{}, fmt.Errorf("resolve %q: %w", ref, ErrNoGold)
	}
	return Gold{}, ErrNoGold
}

func (s *Service) checkGold(g Gold) (Gold, error) {
	if _, ok := s.graph.Diagnosis(g.DiagnosisID); !ok {
		return Gold{}, fmt.Errorf("gold %q from %s %q: %w", g.DiagnosisID, g.Source, g.CaseID, ErrUnknownDiagnosis)
	}
	return g, nil
}

// Assess validates and scores a submission, appends the resulting record to
// the attempt log and returns feedback for the learner. Validation problems
// are returned as joined *ValidationError values before anything is scored.
// Failing to append to the log is logged and does not fail the assessment.
func (s *Service) Assess(ctx context.Context, sub Submission) (*Feedback, error) {
	if err := sub.Validate(s.graph, s.minJustification); err != nil {
		return nil, err
	}

	note := sub.Note
	if strings.TrimSpace(note) == "" {
		if sc, ok := s.library.Scenario(sub.ScenarioID); ok {
			note = sc.Note
		}
	}

	gold, err := s.ResolveGold(sub.ScenarioID, note)
	if err != nil {
		return nil, err
	}

	selected := scoring.NewSet(sub.Features).Sorted()
	expected := s.graph.FeatureIDs(gold.DiagnosisID)
	result := scoring.Score(selected, expected)
	alt := scoring.FindConfusableAlternative(s.graph, selected, gold.DiagnosisID, s.confusables)

	rec := Record{
		ID:               uuid.NewString(),
		Timestamp:        s.now().UTC(),
		StudentID:        strings.TrimSpace(sub.StudentID),
		CaseID:           gold.CaseID,
		StudentDiagnosis: sub.Diagnosis,
		GoldDiagnosis:    gold.DiagnosisID,
		GoldSource:       gold.Source,
		DiagnosisCorrect: sub.Diagnosis == gold.DiagnosisID,
		Precision:        result.Precision,
		Recall:           result.Recall,
		F1:               result.F1,
		SelectedFeatures: selected,
		MissingFeatures:  result.Missing,
		ExtraFeatures:    result.Extra,
		ConfusableDx:     alt.DiagnosisID,
		Justification:    strings.TrimSpace(sub.Justification),
	}

	fb := &Feedback{
		Record:      rec,
		Score:       result,
		Alternative: alt,
		Gold:        s.graph.Highlight(gold.DiagnosisID),
		Expected:    s.graph.AssociatedFeatures(gold.DiagnosisID),
	}
	if strings.TrimSpace(note) != "" {
		fb.Hits = s.retriever.Retrieve(note, s.topK)
	}

	s.append(ctx, rec)

	s.logger.Info("attempt assessed",
		"attempt_id", rec.ID,
		"student_id", rec.StudentID,
		"case_id", rec.CaseID,
		"gold_source", string(rec.GoldSource),
		"correct", rec.DiagnosisCorrect,
		"f1", rec.F1,
	)
	return fb, nil
}

// append records the attempt but never fails the assessment.
func (s *Service) append(ctx context.Context, rec Record) {
	if s.attempts == nil {
		return
	}
	if _, err := s.attempts.AppendAttempt(ctx, rec.EventData()); err != nil {
		s.logger.Warn("failed to append attempt", "attempt_id", rec.ID, "error", err)
	}
}

// EventData converts the record into its attempt-log form.
func (r Record) EventData() store.AttemptEventData {
	return store.AttemptEventData{
		AttemptID:        r.ID,
		Timestamp:        r.Timestamp,
		StudentID:        r.StudentID,
		CaseID:           r.CaseID,
		StudentDiagnosis: r.StudentDiagnosis,
		GoldDiagnosis:    r.GoldDiagnosis,
		GoldSource:       string(r.GoldSource),
		DiagnosisCorrect: r.DiagnosisCorrect,
		Precision:        r.Precision,
		Recall:           r.Recall,
		F1:               r.F1,
		SelectedFeatures: r.SelectedFeatures,
		MissingFeatures:  r.MissingFeatures,
		ExtraFeatures:    r.ExtraFeatures,
		ConfusableDx:     r.ConfusableDx,
		Justification:    r.Justification,
	}
}
