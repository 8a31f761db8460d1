package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// resolveCampaignID resolves a campaign reference: a short ID
// (case-insensitive), a full UUID, or an unambiguous UUID prefix.
func resolveCampaignID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("campaign ID is required")
	}

	campaigns, err := app.Campaigns.List(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range campaigns {
		if strings.EqualFold(c.ShortID, input) {
			return c.ID, nil
		}
	}
	for _, c := range campaigns {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range campaigns {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("campaign not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("campaign ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parsePhaseNumber turns a 1-based phase number argument into an index.
func parsePhaseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("phase number must be a positive integer, got %q", arg)
	}
	return n - 1, nil
}
