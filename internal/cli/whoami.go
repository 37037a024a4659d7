package cli

import (
	"context"
	"fmt"
)

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user := ctx.API.CurrentUser(context.Background())
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}
