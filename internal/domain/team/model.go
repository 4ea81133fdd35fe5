package team

import (
	"fmt"
	"strings"
)

// Team is a tracked club whose match logs get scraped. URLTemplate is the
// stats-site schedule URL with a "{season}" token; the current season page
// lives at the template with an empty token.
type Team struct {
	ID          int64
	Name        string
	League      string
	URLTemplate string
}

// ScheduleURL resolves the scrape target for one season. The current
// season substitutes an empty segment because the site serves it at the
// base path.
func (t Team) ScheduleURL(season string, current bool) string {
	segment := ""
	if !current {
		segment = season + "/"
	}
	return strings.ReplaceAll(t.URLTemplate, "{season}", segment)
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.URLTemplate == "" {
		return fmt.Errorf("team url template is required")
	}

	return nil
}
