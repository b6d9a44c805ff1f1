package command

import (
	"context"
	"strings"
	"time"

	"bgsbot/internal/core"
	"bgsbot/internal/report"
)

type HelpCommand struct {
	registry *core.Registry
}

func NewHelp(registry *core.Registry) *HelpCommand {
	return &HelpCommand{registry: registry}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Lists all commands and how to use them" }
func (c *HelpCommand) Usage() string       { return "help" }
func (c *HelpCommand) Examples() []string  { return []string{"help"} }

func (c *HelpCommand) Run(ctx context.Context, inv *core.Invocation, args string) error {
	page := report.Page{
		Title:     "Help",
		Color:     report.EmbedColor,
		Timestamp: time.Now().UTC(),
	}

	for _, cmd := range c.registry.All() {
		var body strings.Builder
		body.WriteString(cmd.Description() + "\n")
		body.WriteString("Usage: `" + cmd.Usage() + "`")
		for _, example := range cmd.Examples() {
			body.WriteString("\n`" + example + "`")
		}
		page.Fields = append(page.Fields, report.Field{Title: cmd.Name(), Body: body.String()})
	}

	return inv.Reply.SendEmbed(ctx, &page)
}
