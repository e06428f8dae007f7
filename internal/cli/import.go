package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file|url|-]",
		Short: "Index a papers data document into SQLite",
		Long: "Index a papers data document into the SQLite catalog, replacing what was there.\n" +
			"Reads the configured data file by default, or stdin with -.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	ref := cfg.Data
	if len(args) == 1 {
		ref = args[0]
	}

	var doc *model.Document
	var err error
	if ref == "-" {
		doc, err = catalog.Decode(os.Stdin)
		ref = "stdin"
	} else {
		doc, err = catalog.NewSource(ref).Load(cmd.Context())
	}
	if err != nil {
		exitErr("load papers data", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Import(cmd.Context(), store.ImportParams{Doc: doc, Source: ref})
	if err != nil {
		exitErr("import", err)
	}

	b, _ := json.Marshal(struct {
		OK bool `json:"ok"`
		*store.ImportRecord
	}{true, rec})
	fmt.Println(string(b))
}
