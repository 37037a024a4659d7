package cli

import (
	"fmt"
	"time"

	"github.com/bewellhq/bewell/internal/models"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	history, err := ctx.LoadHistory()
	if err != nil {
		return err
	}

	day := c.Date
	if day == "today" {
		day = time.Now().Format(models.DayKeyFormat)
	} else if _, err := time.Parse(models.DayKeyFormat, day); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}

	rec, ok := history.ByDay()[day]
	if !ok {
		fmt.Printf("No photo for %s\n", day)
		return nil
	}
	captured := time.UnixMilli(rec.CapturedAt).Format("3:04 PM")
	fmt.Printf("%s  %s  (captured %s)\n", day, rec.URI, captured)
	return nil
}
