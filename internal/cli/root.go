// Package cli implements the paper-catalog CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/config"
	"github.com/rcliao/paper-catalog/internal/logging"
	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/store"
	"github.com/rcliao/paper-catalog/internal/tree"
)

var (
	dataPath   string
	dbPath     string
	configPath string
	formatFlag string
	logLevel   string

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "paper-catalog",
	Short: "Browse IB past papers and specimen papers",
	Long: "Browse a catalog of IB past papers and specimen papers as a filterable tree.\n" +
		"Reads papers_data.json from disk or a URL, or a SQLite index built with import.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataPath, "data", "D", "", "Papers data file or URL (default: $PAPER_CATALOG_DATA or papers_data.json)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite index path (default: $PAPER_CATALOG_DB or ~/.paper-catalog/catalog.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $PAPER_CATALOG_CONFIG or ~/.paper-catalog/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// setup resolves settings as flag > env > file > default and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if dataPath != "" {
		c.Data = dataPath
	}
	if dbPath != "" {
		c.DB = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("invalid format %q (use json or text)", formatFlag)
	}

	l, err := logging.New(c.Log.Level, c.Log.Development)
	if err != nil {
		return err
	}
	cfg, logger = c, logging.OrNop(l)
	return nil
}

func getDBPath() string {
	if cfg.DB != "" {
		return cfg.DB
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paper-catalog", "catalog.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// openSource reads from the SQLite index when --db is given without --data,
// otherwise from the configured data file or URL.
func openSource() (catalog.Source, func(), error) {
	if dbPath != "" && dataPath == "" {
		s, err := openStore()
		if err != nil {
			return nil, nil, err
		}
		return catalog.StoreSource{Store: s, Path: getDBPath()}, func() { s.Close() }, nil
	}
	return catalog.NewSource(cfg.Data), func() {}, nil
}

func loadDocument(cmd *cobra.Command) *model.Document {
	src, closeFn, err := openSource()
	if err != nil {
		exitErr("open store", err)
	}
	defer closeFn()

	h := catalog.NewHolder(src, logger)
	if err := h.Reload(cmd.Context()); err != nil {
		exitErr("load papers data", err)
	}
	doc, _ := h.Current()
	return doc
}

func sortMode(s string) model.SortMode {
	if s == "" {
		s = cfg.DefaultSort
	}
	mode, err := model.ParseSortMode(s)
	if err != nil {
		exitErr("sort", err)
	}
	return mode
}

func newBuilder() *tree.Builder {
	return tree.NewBuilder(nil)
}

func exitErr(msg string, err error) {
	logger.Sync()
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
