package cli

import (
	"context"
	"fmt"
	"strings"
)

type SurveyCmd struct {
	Feelings []string `arg:"" help:"How you're feeling, in your own words."`
}

func (c *SurveyCmd) Run(ctx *Context) error {
	suggestion := ctx.Prompts.Suggest(context.Background(), strings.Join(c.Feelings, " "))
	fmt.Println(suggestion)
	return nil
}
