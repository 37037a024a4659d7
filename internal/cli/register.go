package cli

import (
	"context"
	"fmt"
)

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Account email."`
	Password string `short:"p" help:"Account password." required:""`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	user, err := ctx.API.Register(context.Background(), c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome to BeWell, %s!\n", user.Name)
	return nil
}
