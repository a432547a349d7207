package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/navelogic/rpgbot/internal/dice"
	"github.com/navelogic/rpgbot/internal/domain"
)

// RollCommand evaluates a command offline, without a running API
type RollCommand struct{}

func (c *RollCommand) Name() string {
	return "roll"
}

func (c *RollCommand) Description() string {
	return "Evaluate a dice command locally (e.g. devtool roll -seed 7 \"/r 2d20m1+3\")"
}

func (c *RollCommand) Run(args []string) error {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "Seed for a reproducible roll (0 = random)")
	breakdown := fs.Bool("terms", false, "Print the per-term breakdown")
	if err := fs.Parse(args); err != nil {
		return err
	}

	command := strings.Join(fs.Args(), " ")
	if command == "" {
		return fmt.Errorf("missing dice command")
	}
	// Accept a bare expression for convenience
	if _, ok := dice.ExtractExpression(command); !ok && !strings.HasPrefix(command, "/") {
		command = domain.CommandRoll + " " + command
	}

	var src dice.Source
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}

	result, err := dice.NewEvaluator(src).Evaluate(context.Background(), command)
	if err != nil {
		PrintError("%s", domain.UserMessage(err))
		return err
	}

	fmt.Fprintln(out, renderRoll(result, *breakdown))
	return nil
}

// renderRoll prints a result the way the chat reply shows it, optionally
// followed by one line per term.
func renderRoll(result *domain.RollResult, breakdown bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %d", result.Visual, result.Total)
	if result.CriticalMessage != "" {
		fmt.Fprintf(&b, "\n%s", result.CriticalMessage)
	}

	if breakdown {
		for _, t := range result.Terms {
			if t.Dice == "" {
				fmt.Fprintf(&b, "\n  %s %d", t.Operator, t.Value)
				continue
			}
			fmt.Fprintf(&b, "\n  %s %s rolled=%v kept=%v value=%d", t.Operator, t.Dice, t.Rolled, t.Kept, t.Value)
		}
	}
	return b.String()
}
