package cmd

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
)

func required(label string) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.Newf("%s is required", strings.ToLower(label))
		}
		return nil
	}
}

// promptText asks for value unless it was already given as a flag.
func promptText(label string, value string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	prompt := promptui.Prompt{
		Label:    label,
		Validate: required(label),
	}
	if secret {
		prompt.Mask = '•'
	}
	return prompt.Run()
}

func promptSelect(label string, value string, items []string) (string, error) {
	if value != "" {
		return value, nil
	}
	selectItem := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}
	_, picked, err := selectItem.Run()
	return picked, err
}

// promptConfirm returns false when the user declines.
func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
