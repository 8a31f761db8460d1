package service

import (
	"fmt"

	"github.com/alexanderramin/mealfund/internal/domain"
)

// canonicalWindow parses both window bounds and rewrites them in canonical
// local form. Bounds that do not parse are rejected here rather than
// silently skipped by the timeline rules.
func canonicalWindow(w domain.FundingWindow) (domain.FundingWindow, error) {
	start, ok := w.StartAt()
	if !ok {
		return w, fmt.Errorf("fundraising start %q is not a valid date-time (expected YYYY-MM-DDTHH:MM)", w.Start)
	}
	end, ok := w.EndAt()
	if !ok {
		return w, fmt.Errorf("fundraising end %q is not a valid date-time (expected YYYY-MM-DDTHH:MM)", w.End)
	}
	return domain.FundingWindow{Start: start.String(), End: end.String()}, nil
}

// restoreRecords undoes the persistence offset on stored phase rows.
func restoreRecords(records []*domain.PhaseRecord, offsetHours int) domain.PhaseSequence {
	exported := make([]domain.ExportedPhase, 0, len(records))
	for _, r := range records {
		exported = append(exported, r.ExportedPhase)
	}
	return domain.PhaseSequence(domain.RestorePhases(exported, offsetHours))
}
