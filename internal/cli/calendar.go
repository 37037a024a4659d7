package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/bewellhq/bewell/internal/calendar"
)

type CalendarCmd struct{}

func (c *CalendarCmd) Run(ctx *Context) error {
	history, err := ctx.LoadHistory()
	if err != nil {
		return err
	}

	for _, month := range calendar.Build(history, time.Now()) {
		fmt.Println(renderMonth(month))
	}
	return nil
}

// renderMonth prints one month as a weekday-aligned grid. Days with a photo
// are bracketed.
func renderMonth(m calendar.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.Anchor.Format("January 2006"))
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for _, week := range m.Weeks {
		for _, day := range week {
			switch {
			case day.DayOfMonth == 0:
				b.WriteString("    ")
			case day.Photo != nil:
				fmt.Fprintf(&b, "[%2d]", day.DayOfMonth)
			default:
				fmt.Fprintf(&b, " %2d ", day.DayOfMonth)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
