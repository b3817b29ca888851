// Package forms provides huh-based prompts for the CLI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

// NewConfirmOverwriteForm creates a huh confirm form asking whether an
// existing reel may be replaced. The result pointer is bound to the confirm
// field value.
func NewConfirmOverwriteForm(path string, size int64, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing reel?").
				Description(fmt.Sprintf("%s already exists (%s). It is only replaced if the new reel compiles.",
					path, humanize.Bytes(uint64(size)))).
				Affirmative("Yes, overwrite").
				Negative("No, cancel").
				Value(overwrite),
		),
	).WithTheme(Theme())
}
