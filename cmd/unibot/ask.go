package main

import (
	"fmt"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Assistant.Chat(deps.Ctx, c.Question)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
