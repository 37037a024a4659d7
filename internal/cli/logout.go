package cli

import "fmt"

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.API.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
