package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the values each filter accepts",
		Run:   runFilters,
	}

	RootCmd.AddCommand(cmd)
}

func runFilters(cmd *cobra.Command, args []string) {
	opts := catalog.Options(loadDocument(cmd))

	if formatFlag != "text" {
		if err := render.JSON(os.Stdout, opts); err != nil {
			exitErr("write", err)
		}
		return
	}

	fmt.Printf("years:     %s\n", strings.Join(opts.Years, ", "))
	fmt.Printf("levels:    %s\n", strings.Join(catalog.Values(opts.Levels), ", "))
	fmt.Printf("timezones: %s\n", strings.Join(catalog.Values(opts.Timezones), ", "))
	fmt.Printf("papers:    %s\n", strings.Join(catalog.Values(opts.PaperNumbers), ", "))
	fmt.Printf("types:     %s\n", strings.Join(catalog.Values(opts.Types), ", "))
	fmt.Println("subjects:")
	for _, s := range opts.Subjects {
		fmt.Printf("  %-40s %s\n", s.Value, s.Label)
	}
	fmt.Println("specimen groups:")
	for _, g := range opts.SpecimenGroups {
		fmt.Printf("  %s\n", g)
	}
}
