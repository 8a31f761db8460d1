package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
)

// sessionStore is the phase store an attached session saves through.
type sessionStore interface {
	export(phases domain.PhaseSequence) []domain.ExportedPhase
	sync(ctx context.Context, plan SyncPlan) (*SyncResult, error)
}

// EditSession exclusively owns one campaign's phase sequence while it is
// being edited. Every mutation happens in memory; nothing is persisted
// until Save passes the validation gate. An EditSession is not safe for
// concurrent use.
type EditSession struct {
	campaign domain.Campaign
	window   domain.FundingWindow
	phases   domain.PhaseSequence
	store    sessionStore

	// revision counts structural edits; IDs are adopted by position.
	revision int
}

// NewEditSession starts a detached session over the given phases. Save on
// a detached session returns ErrSessionDetached.
func NewEditSession(c *domain.Campaign, phases domain.PhaseSequence) *EditSession {
	return &EditSession{
		campaign: *c,
		window:   c.Window(),
		phases:   phases.Clone(),
	}
}

func (s *EditSession) CampaignID() string { return s.campaign.ID }

// Campaign returns the campaign as it was when the session began.
func (s *EditSession) Campaign() domain.Campaign { return s.campaign }

func (s *EditSession) Window() domain.FundingWindow { return s.window }

// Phases returns a copy of the current sequence.
func (s *EditSession) Phases() domain.PhaseSequence { return s.phases.Clone() }

func (s *EditSession) Len() int { return len(s.phases) }

// CanAppendPhase reports whether AddPhase would succeed.
func (s *EditSession) CanAppendPhase() bool {
	return plancheck.CanAppendPhase(s.phases)
}

// AddPhase appends a blank phase. It is refused while any existing phase
// is incomplete.
func (s *EditSession) AddPhase() error {
	if !s.CanAppendPhase() {
		return domain.ErrIncompletePhase
	}
	s.phases = append(s.phases, domain.Phase{})
	s.revision++
	return nil
}

// RemovePhase drops the phase at index i. Later phases move up one
// position. The last remaining phase cannot be removed.
func (s *EditSession) RemovePhase(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if len(s.phases) == 1 {
		return domain.ErrLastPhase
	}
	s.phases = append(s.phases[:i:i], s.phases[i+1:]...)
	s.revision++
	return nil
}

// SetField assigns a raw value to one field of phase i. Percent fields
// reject input IsValidPercentInput would not accept, leaving the previous
// value in place.
func (s *EditSession) SetField(i int, field domain.PhaseField, value string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.phases[i].Set(field, value); err != nil {
		return fmt.Errorf("phase %d %s: %w", i+1, field, err)
	}
	return nil
}

// BlurField normalizes a percent field the way a form does when the field
// loses focus. Other fields are left alone.
func (s *EditSession) BlurField(i int, field domain.PhaseField) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !field.IsShare() {
		return nil
	}
	return s.phases[i].Set(field, domain.NormalizePercentOnBlur(s.phases[i].Get(field)))
}

func (s *EditSession) SetWindow(w domain.FundingWindow) {
	s.window = w
}

// Validate runs the full save gate over the current state.
func (s *EditSession) Validate(today time.Time) plancheck.Result {
	return plancheck.ValidateForSave(s.window, s.phases, today)
}

// Warnings returns timeline violations keyed by 0-based phase index, with
// window violations under -1.
func (s *EditSession) Warnings(today time.Time) map[int][]plancheck.Violation {
	return plancheck.PhaseViolations(s.window, s.phases, today)
}

// Save validates the session and, when the gate passes, hands the whole
// sequence to the phase store. A refused save returns *SaveBlockedError; a
// store failure wraps ErrSyncFailed. Either way the session is unchanged
// and may be saved again.
func (s *EditSession) Save(ctx context.Context, today time.Time) (*SyncResult, error) {
	pending, err := s.Prepare(today)
	if err != nil {
		return nil, err
	}
	result, err := pending.Commit(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(pending, result); err != nil {
		return nil, err
	}
	return result, nil
}

// PendingSave is a sequence that passed the save gate, exported by value.
// Commit reads only the plan, so it may run on another goroutine while
// the session keeps being edited.
type PendingSave struct {
	Plan     SyncPlan
	revision int
	store    sessionStore
}

// Prepare runs the save gate and exports the sequence into a detached
// plan. It returns ErrSessionDetached for a session not opened through
// PhaseEditService.Begin and *SaveBlockedError when the gate refuses.
func (s *EditSession) Prepare(today time.Time) (*PendingSave, error) {
	if s.store == nil {
		return nil, ErrSessionDetached
	}
	res := s.Validate(today)
	if !res.OK {
		return nil, &SaveBlockedError{Result: res}
	}
	window, err := canonicalWindow(s.window)
	if err != nil {
		return nil, err
	}
	return &PendingSave{
		Plan: SyncPlan{
			CampaignID: s.campaign.ID,
			Window:     window,
			Phases:     s.store.export(s.phases),
		},
		revision: s.revision,
		store:    s.store,
	}, nil
}

// Commit writes the plan through the phase store.
func (p *PendingSave) Commit(ctx context.Context) (*SyncResult, error) {
	return p.store.sync(ctx, p.Plan)
}

// Apply records a committed save on the session. If phases were added or
// removed after Prepare the persisted IDs no longer line up by position;
// the sequence is left alone and ErrSessionChanged is returned.
func (s *EditSession) Apply(p *PendingSave, result *SyncResult) error {
	s.campaign.FundraisingStart, s.campaign.FundraisingEnd = p.Plan.Window.Start, p.Plan.Window.End
	if p.revision != s.revision {
		return ErrSessionChanged
	}
	s.adoptIDs(result.PhaseIDs)
	return nil
}

// adoptIDs records the persisted IDs so a later save updates instead of
// creating again.
func (s *EditSession) adoptIDs(ids []string) {
	for i := range s.phases {
		if i < len(ids) {
			s.phases[i].ID = ids[i]
		}
	}
}

func (s *EditSession) checkIndex(i int) error {
	if i < 0 || i >= len(s.phases) {
		return fmt.Errorf("phase %d of %d: %w", i+1, len(s.phases), domain.ErrPhaseIndexOutOfRange)
	}
	return nil
}
