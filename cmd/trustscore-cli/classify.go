package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

var classifyCmd = &cobra.Command{
	Use:   "classify URL...",
	Short: "Print the category of each URL",
	Long:  "Classify URLs as DATASET, MODEL, CODE or INVALID and show the identifier used for scoring.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, link := range args {
			fmt.Fprintln(out, classifyLine(link))
		}
		return nil
	},
}

func classifyLine(link string) string {
	c := category.Classify(link)
	if !c.Valid() {
		return fmt.Sprintf("%s %s %s", ui.GetCrossMark(), ui.Error.Render(c.String()), link)
	}
	id, ok := category.Identifier(c, link)
	if !ok {
		id = ui.Warning.Render("(no identifier)")
	} else {
		id = ui.Highlight.Render(id)
	}
	return fmt.Sprintf("%s %s %s %s", ui.GetCheckMark(), ui.Secondary.Render(c.String()), link, id)
}
