package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// ConfirmOverwrite asks whether an existing report at path may be replaced.
func ConfirmOverwrite(path string) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing report?").
				Description(fmt.Sprintf("%s already exists.", path)).
				Value(&confirm).
				Affirmative("Yes").
				Negative("No"),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}
