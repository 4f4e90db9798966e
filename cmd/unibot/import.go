package main

import (
	"fmt"
	"os"

	"github.com/MuhammadAbbas01/unibot/yaml"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.File, err)
	}
	defer f.Close()

	counts, err := yaml.Import(deps.Ctx, f, deps.Records)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d faculty, %d departments, %d notifications from %s\n",
		counts.Faculty, counts.Departments, counts.Notifications, c.File)
	return nil
}
