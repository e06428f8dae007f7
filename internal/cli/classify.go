package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/classify"
	"github.com/rcliao/paper-catalog/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify [subject...]",
		Short: "Show the group of each subject id",
		Long:  "Show the group of each subject id. With no arguments, lists the known groups.",
		Run:   runClassify,
	}

	RootCmd.AddCommand(cmd)
}

type classification struct {
	Subject string `json:"subject"`
	Label   string `json:"label"`
	Group   string `json:"group"`
	Known   bool   `json:"known"`
}

func runClassify(cmd *cobra.Command, args []string) {
	c := classify.Default()

	if len(args) == 0 {
		if formatFlag == "text" {
			for _, g := range c.Groups() {
				fmt.Println(g)
			}
			return
		}
		if err := render.JSON(os.Stdout, c.Groups()); err != nil {
			exitErr("write", err)
		}
		return
	}

	out := make([]classification, 0, len(args))
	for _, s := range args {
		out = append(out, classification{Subject: s, Label: classify.FormatLabel(s), Group: c.Classify(s), Known: c.Known(s)})
	}
	if formatFlag == "text" {
		for _, r := range out {
			fmt.Printf("%s\t%s\n", r.Label, r.Group)
		}
		return
	}
	if err := render.JSON(os.Stdout, out); err != nil {
		exitErr("write", err)
	}
}
