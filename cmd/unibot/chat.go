package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/MuhammadAbbas01/unibot/chat"
)

// Run executes the interactive chat command. It reads one question per
// line until EOF or a farewell word.
func (c *ChatCmd) Run(deps *Dependencies) error {
	stats := deps.Assistant.Stats()
	fmt.Fprintln(deps.Stdout, "University of Malakand Assistant")
	fmt.Fprintf(deps.Stdout, "Loaded %d pages, %d faculty, %d departments, %d notifications.\n",
		stats.Pages, stats.Faculty, stats.Departments, stats.Notifications)
	fmt.Fprintln(deps.Stdout, "Type 'help' for examples or 'quit' to exit.")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "bye":
			fmt.Fprintln(deps.Stdout, "Goodbye!")
			return nil
		case "help":
			fmt.Fprintln(deps.Stdout, chat.Help())
			continue
		}

		reply, err := deps.Assistant.Chat(deps.Ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Bot: %s\n", reply)
	}
}
