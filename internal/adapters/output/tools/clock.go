package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"localaichat/internal/domain"
)

// Compile-time check to ensure Clock implements domain.Tool
var _ domain.Tool = (*Clock)(nil)

// Clock struct - Tool reporting the current date and calendar boundaries
type Clock struct {
	location *time.Location
	now      func() time.Time
}

// NewClock func - Creates a clock tool for an IANA zone name; unknown names use UTC
func NewClock(zone string) *Clock {
	return &Clock{
		location: domain.LoadLocation(zone),
		now:      time.Now,
	}
}

func (c *Clock) Name() string { return "clock" }

func (c *Clock) Description() string {
	return "Get the current date and time, or the start and end of the current day, month or year"
}

// Call ignores the prompt and describes the current time in the configured location
func (c *Clock) Call(ctx context.Context, prompt string) (any, error) {
	now := c.now().In(c.location)

	lines := []string{
		fmt.Sprintf("Current date and time: %s (%s)", now.Format(domain.OnlyDateTimeLayout), now.Weekday()),
		fmt.Sprintf("Today: %s to %s",
			domain.BeginningOfDay(now, c.location).Format(domain.OnlyDateTimeLayout),
			domain.EndOfDay(now, c.location).Format(domain.OnlyDateTimeLayout)),
		fmt.Sprintf("This month (%s): %s to %s", now.Format(domain.MonthlyLayout),
			domain.BeginningOfMonth(now, c.location).Format(domain.OnlyDate),
			domain.EndOfMonth(now, c.location).Format(domain.OnlyDate)),
		fmt.Sprintf("This year: %s to %s",
			domain.BeginningOfYear(now, c.location).Format(domain.OnlyDate),
			domain.EndOfYear(now, c.location).Format(domain.OnlyDate)),
	}

	return map[string]any{
		domain.ToolContextKey: strings.Join(lines, "\n"),
		"timezone":            c.location.String(),
		"timestamp":           now.Format(domain.DatetimeZoneLayout),
	}, nil
}
