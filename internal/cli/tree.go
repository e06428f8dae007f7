package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the past papers tree",
		Long: "Show past papers grouped by year (year > group > subject) or by subject\n" +
			"(group > subject > year), after applying the filters.",
		Run: runTree,
	}
	cmd.Flags().String("sort", "", "Tree shape: year or subject (default from config)")
	cmd.Flags().StringP("year", "y", "", "Only this year")
	cmd.Flags().StringP("subject", "s", "", "Only this subject id, e.g. business_management")
	cmd.Flags().StringP("level", "l", "", "HL or SL")
	cmd.Flags().StringP("timezone", "z", "", "Timezone, e.g. TZ1")
	cmd.Flags().StringP("paper", "p", "", "Paper number")
	cmd.Flags().StringP("type", "t", "", "paper, markscheme or resource")
	cmd.Flags().StringP("search", "q", "", "Case-insensitive search over name and code")
	cmd.Flags().Bool("links", false, "Show file links (text format)")

	RootCmd.AddCommand(cmd)
}

func runTree(cmd *cobra.Command, args []string) {
	sortFlag, _ := cmd.Flags().GetString("sort")
	links, _ := cmd.Flags().GetBool("links")

	var f model.FilterState
	f.Year, _ = cmd.Flags().GetString("year")
	f.Subject, _ = cmd.Flags().GetString("subject")
	f.Level, _ = cmd.Flags().GetString("level")
	f.Timezone, _ = cmd.Flags().GetString("timezone")
	f.PaperNumber, _ = cmd.Flags().GetString("paper")
	f.Type, _ = cmd.Flags().GetString("type")
	f.Search, _ = cmd.Flags().GetString("search")
	if err := f.Validate(); err != nil {
		exitErr("filters", err)
	}
	mode := sortMode(sortFlag)

	doc := loadDocument(cmd)
	t := newBuilder().BuildPastPapers(doc.PastPapers, f, mode)

	var err error
	if formatFlag == "text" {
		err = render.PastPapers(os.Stdout, t, render.Options{Links: links, Styles: render.DefaultStyles()})
	} else {
		err = render.JSON(os.Stdout, render.PastPapersResult(t))
	}
	if err != nil {
		exitErr("write", err)
	}
}
