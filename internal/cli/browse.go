package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/render"
	"github.com/rcliao/paper-catalog/internal/ui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the paper trees interactively",
		Long: "Browse past papers and specimen papers in the terminal.\n\n" +
			"  tab      switch between past and specimen papers\n" +
			"  enter    open or close a folder\n" +
			"  /        search, esc clears\n" +
			"  s        toggle by year / by subject\n" +
			"  y u l z p t   cycle year, subject, level, timezone, paper, type\n" +
			"  g        cycle specimen group\n" +
			"  c        clear filters\n" +
			"  e / x    expand / collapse all",
		Run: runBrowse,
	}
	cmd.Flags().String("sort", "", "Initial tree shape: year or subject")

	RootCmd.AddCommand(cmd)
}

func runBrowse(cmd *cobra.Command, args []string) {
	sortFlag, _ := cmd.Flags().GetString("sort")
	mode := sortMode(sortFlag)
	doc := loadDocument(cmd)

	m := ui.New(doc, newBuilder(), mode, render.DefaultStyles())
	if err := ui.Run(m); err != nil {
		exitErr("browse", err)
	}
}
