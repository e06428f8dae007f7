package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog index statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath(), newBuilder().Classifier())
	if err != nil {
		exitErr("stats", err)
	}

	if formatFlag == "text" {
		fmt.Printf("papers: %d (%d mark schemes, %d resources)\n", stats.Papers, stats.Markschemes, stats.Resources)
		fmt.Printf("years: %d  subjects: %d  specimens: %d  unknown subjects: %d\n",
			stats.Years, stats.Subjects, stats.Specimens, stats.UnknownCount)
		for _, y := range stats.PerYear {
			fmt.Printf("  %s\t%d\n", y.Year, y.Papers)
		}
		return
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(b))
}
