package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the SQLite catalog as a papers data document",
		Long:  "Export the SQLite catalog in the papers_data.json format. Writes to stdout unless -o is given.",
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	doc, err := s.Document(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(doc, "", "  ")
	if out == "" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(out, append(b, '\n'), 0o644); err != nil {
		exitErr("write", err)
	}
}
