package session

import (
	"fmt"

	"subcheck/internal/domain"
)

// allowed enumerates the legal phase transitions. Failed is reachable from
// any in-progress phase; Idle is reachable from any phase via reset.
var allowed = map[domain.SessionPhase][]domain.SessionPhase{
	domain.PhaseIdle:      {domain.PhaseChecking, domain.PhaseAnalyzing},
	domain.PhaseChecking:  {domain.PhaseChecked, domain.PhaseFailed},
	domain.PhaseChecked:   {domain.PhaseChecking, domain.PhaseAnalyzing},
	domain.PhaseAnalyzing: {domain.PhaseAnalyzed, domain.PhaseFailed},
	domain.PhaseAnalyzed:  {domain.PhaseChecking, domain.PhaseAnalyzing},
	domain.PhaseFailed:    {domain.PhaseChecking, domain.PhaseAnalyzing},
}

// Transition validates a phase change. Starting a phase while another is in
// flight yields ErrPhaseConflict; any other illegal move is reported with
// both phases named.
func Transition(from, to domain.SessionPhase) error {
	if to == domain.PhaseIdle {
		return nil
	}
	if from.InFlight() && to.InFlight() {
		return domain.ErrPhaseConflict
	}
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return &domain.InputValidationError{Reason: fmt.Sprintf("cannot move from phase %q to %q", from, to)}
}
