package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "link <name>",
		Short: "Print the relative link of a paper file",
		Long: "Print the relative link of a past paper by file name, or of a specimen\n" +
			"paper when --group and --subject are given.",
		Args: cobra.ExactArgs(1),
		Run:  runLink,
	}
	cmd.Flags().StringP("group", "g", "", "Specimen paper group")
	cmd.Flags().StringP("subject", "s", "", "Specimen paper subject")

	RootCmd.AddCommand(cmd)
}

func runLink(cmd *cobra.Command, args []string) {
	group, _ := cmd.Flags().GetString("group")
	subject, _ := cmd.Flags().GetString("subject")

	if group == "" && subject == "" {
		fmt.Println(render.PaperLink(model.Paper{Name: args[0]}))
		return
	}
	if group == "" || subject == "" {
		exitErr("link", fmt.Errorf("specimen links need both --group and --subject"))
	}
	fmt.Println(render.SpecimenLink(model.SpecimenPaper{Name: args[0], Subject: subject, Group: group}))
}
