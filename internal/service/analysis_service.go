package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"subcheck/internal/domain"
	"subcheck/internal/extractor"
	"subcheck/internal/normalize"
	"subcheck/internal/port"
	"subcheck/internal/prompt"
	"subcheck/internal/session"
)

// AnalysisService runs the two workflow phases against a session.
type AnalysisService interface {
	CheckCompleteness(ctx context.Context, sessionID uuid.UUID) (*domain.CompletenessResult, error)
	RunAnalysis(ctx context.Context, sessionID uuid.UUID) (*domain.AnalysisResult, error)
}

type analysisService struct {
	store       port.SessionStore
	generator   port.Generator
	temperature float64
}

// NewAnalysisService creates an AnalysisService using the given generator.
func NewAnalysisService(store port.SessionStore, generator port.Generator, temperature float64) AnalysisService {
	if temperature == 0 {
		temperature = 0.1
	}
	return &analysisService{store: store, generator: generator, temperature: temperature}
}

// CheckCompleteness runs phase 1: mark every master-list part Provided or
// Missing against the uploaded datasheet filenames. Only the master list's
// content is sent; datasheets are represented by name alone.
func (s *analysisService) CheckCompleteness(ctx context.Context, sessionID uuid.UUID) (*domain.CompletenessResult, error) {
	sess, err := s.begin(ctx, sessionID, domain.PhaseChecking, false)
	if err != nil {
		return nil, err
	}

	result, err := s.runCompleteness(ctx, sess)
	if err != nil {
		s.fail(ctx, sessionID, err)
		return nil, err
	}

	_, err = s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Phase = domain.PhaseChecked
		sess.Completeness = result
		sess.LastError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RunAnalysis runs phase 2: the full per-parameter comparison. The datasheet
// set must be non-empty; this is verified before any remote call.
func (s *analysisService) RunAnalysis(ctx context.Context, sessionID uuid.UUID) (*domain.AnalysisResult, error) {
	sess, err := s.begin(ctx, sessionID, domain.PhaseAnalyzing, true)
	if err != nil {
		return nil, err
	}

	result, err := s.runAnalysis(ctx, sess)
	if err != nil {
		s.fail(ctx, sessionID, err)
		return nil, err
	}

	_, err = s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Phase = domain.PhaseAnalyzed
		sess.Analysis = result
		sess.LastError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// begin validates the phase preconditions and transitions the session into
// the in-flight phase atomically, returning the input snapshot to work on.
func (s *analysisService) begin(ctx context.Context, sessionID uuid.UUID, target domain.SessionPhase, needDatasheets bool) (*domain.Session, error) {
	return s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		if sess.MasterList == nil {
			return &domain.InputValidationError{Reason: "master list is required"}
		}
		if needDatasheets && len(sess.Datasheets) == 0 {
			return &domain.InputValidationError{Reason: "at least one datasheet is required for full analysis"}
		}
		if err := session.Transition(sess.Phase, target); err != nil {
			return err
		}
		sess.Phase = target
		return nil
	})
}

// fail records the error and moves the session to failed so it is never
// left in a permanent in-progress state.
func (s *analysisService) fail(ctx context.Context, sessionID uuid.UUID, cause error) {
	_, err := s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Phase = domain.PhaseFailed
		sess.LastError = cause.Error()
		return nil
	})
	if err != nil {
		log.Printf("analysisService: recording failure for session %s: %v", sessionID, err)
	}
}

func (s *analysisService) runCompleteness(ctx context.Context, sess *domain.Session) (*domain.CompletenessResult, error) {
	masterPart, err := normalize.Normalize(sess.MasterList, "Master List: "+sess.MasterList.OriginalName)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(sess.Datasheets))
	for i, f := range sess.Datasheets {
		names[i] = f.OriginalName
	}

	parts, err := prompt.ComposeCompleteness([]domain.PromptPart{masterPart}, names)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, port.GenerateInput{
		Parts:       parts,
		Schema:      extractor.CompletenessSchema,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, err
	}

	return extractor.DecodeCompleteness(raw)
}

func (s *analysisService) runAnalysis(ctx context.Context, sess *domain.Session) (*domain.AnalysisResult, error) {
	masterPart, err := normalize.Normalize(sess.MasterList, "Master List: "+sess.MasterList.OriginalName)
	if err != nil {
		return nil, err
	}

	labeled, err := normalizeAll(sess.Datasheets)
	if err != nil {
		return nil, err
	}

	parts, err := prompt.ComposeAnalysis([]domain.PromptPart{masterPart}, labeled)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, port.GenerateInput{
		Parts:       parts,
		Schema:      extractor.AnalysisSchema,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, err
	}

	return extractor.DecodeAnalysis(raw)
}

// normalizeAll normalizes the datasheet set concurrently. Results land in an
// index-addressed slice so output order always matches input order.
func normalizeAll(files []domain.IngestedFile) ([]prompt.LabeledPart, error) {
	labeled := make([]prompt.LabeledPart, len(files))
	var g errgroup.Group
	for i := range files {
		g.Go(func() error {
			file := files[i]
			part, err := normalize.Normalize(&file, "Datasheet: "+file.OriginalName)
			if err != nil {
				return err
			}
			labeled[i] = prompt.LabeledPart{Filename: file.OriginalName, Part: part}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labeled, nil
}
