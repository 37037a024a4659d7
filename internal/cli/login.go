package cli

import (
	"context"
	"fmt"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `short:"p" help:"Account password." required:""`
}

func (c *LoginCmd) Run(ctx *Context) error {
	user, err := ctx.API.Login(context.Background(), c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}
