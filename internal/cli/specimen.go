package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "specimen",
		Short: "Show the specimen papers tree",
		Run:   runSpecimen,
	}
	cmd.Flags().StringP("group", "g", "", "Only this group, e.g. \"Group 4 - Experimental Sciences\"")
	cmd.Flags().StringP("search", "q", "", "Case-insensitive search over name and subject")
	cmd.Flags().Bool("links", false, "Show file links (text format)")

	RootCmd.AddCommand(cmd)
}

func runSpecimen(cmd *cobra.Command, args []string) {
	var f model.SpecimenFilter
	f.Group, _ = cmd.Flags().GetString("group")
	f.Search, _ = cmd.Flags().GetString("search")
	links, _ := cmd.Flags().GetBool("links")

	doc := loadDocument(cmd)
	t := newBuilder().BuildSpecimen(doc.SpecimenPapers, f)

	var err error
	if formatFlag == "text" {
		err = render.SpecimenPapers(os.Stdout, t, render.Options{Links: links, Styles: render.DefaultStyles()})
	} else {
		err = render.JSON(os.Stdout, render.SpecimenResult(t))
	}
	if err != nil {
		exitErr("write", err)
	}
}
