package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bewellhq/bewell/internal/camera"
)

type CaptureCmd struct {
	Caption string `short:"c" help:"Caption to attach to the uploaded photo."`
	Force   bool   `help:"Capture even if today's photo already exists." hidden:""`
}

func (c *CaptureCmd) Run(ctx *Context) error {
	history, err := ctx.LoadHistory()
	if err != nil {
		return err
	}

	now := time.Now()
	if history.HasPhotoForToday(now) && !c.Force {
		fmt.Println("You've already taken your photo for today. Come back tomorrow!")
		return nil
	}

	uri, err := ctx.Camera.Capture(context.Background())
	if err != nil {
		if errors.Is(err, camera.ErrPermission) {
			return fmt.Errorf("%w (grant access to the inbox directory and retry)", err)
		}
		return err
	}

	rec := history.Append(uri, now)
	if err := ctx.Session.Save(history); err != nil {
		return err
	}
	fmt.Printf("Captured today's photo: %s\n", rec.URI)

	// Upload is best-effort; the journal entry stands either way.
	if err := ctx.API.UploadPhoto(context.Background(), rec.URI, c.Caption); err != nil {
		fmt.Printf("Photo saved locally but not uploaded: %v\n", err)
	}
	return nil
}
