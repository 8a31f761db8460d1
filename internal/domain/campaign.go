package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Campaign is a fundraising campaign. Fundraising dates are stored as the
// user entered them, in canonical local form.
type Campaign struct {
	ID               string
	ShortID          string
	Title            string
	TargetAmount     int64
	FundraisingStart string
	FundraisingEnd   string
	Status           CampaignStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Window returns the campaign's funding window.
func (c *Campaign) Window() FundingWindow {
	return FundingWindow{Start: c.FundraisingStart, End: c.FundraisingEnd}
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. SOUP01).
func (c *Campaign) ValidateShortID() error {
	if c.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(c.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. SOUP01)", c.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (c *Campaign) DisplayID() string {
	if c.ShortID != "" {
		return c.ShortID
	}
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}

// FundingWindow is the period during which donations are collected.
type FundingWindow struct {
	Start string
	End   string
}

func (w FundingWindow) StartAt() (LocalDateTime, bool) { return ParseLocalDateTime(w.Start) }
func (w FundingWindow) EndAt() (LocalDateTime, bool)   { return ParseLocalDateTime(w.End) }
