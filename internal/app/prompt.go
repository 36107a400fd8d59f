package app

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("app: prompt aborted")

// Prompter asks the user to pick among options and returns the chosen
// indices in option order.
type Prompter interface {
	MultiSelect(ctx context.Context, message string, options []string) ([]int, error)
}

type surveyPrompter struct{}

func (surveyPrompter) MultiSelect(ctx context.Context, message string, options []string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
		Default: options,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return indicesOf(options, out), nil
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}
