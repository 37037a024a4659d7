package cli

import (
	"context"
	"fmt"

	"github.com/bewellhq/bewell/internal/feed"
)

type FeedCmd struct{}

func (c *FeedCmd) Run(ctx *Context) error {
	for _, post := range feed.Load(context.Background(), ctx.API) {
		fmt.Printf("%-22s %-35s %s\n", post.Name, post.Prompt, post.Time)
	}
	return nil
}
