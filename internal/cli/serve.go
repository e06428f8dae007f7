package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the paper trees over HTTP",
		Long: "Serve the paper trees as JSON under /api, the raw data document at\n" +
			"/papers_data.json and, with --static, the paper files themselves.",
		Run: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default: $PAPER_CATALOG_ADDR, :$PORT or :8080)")
	cmd.Flags().String("static", "", "Directory holding past_papers/ and specimen_papers/")
	cmd.Flags().Bool("watch", false, "Reload the data file when it changes")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	sc := cfg.Server
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		sc.Addr = v
	}
	if v, _ := cmd.Flags().GetString("static"); v != "" {
		sc.StaticDir = v
	}
	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch, _ = cmd.Flags().GetBool("watch")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeFn, err := openSource()
	if err != nil {
		exitErr("open store", err)
	}
	defer closeFn()

	// a failed first load is served as 503 until a reload succeeds
	h := catalog.NewHolder(src, logger)
	_ = h.Reload(ctx)

	if watch {
		startWatcher(ctx, src, h)
	}

	srv := server.NewServer(sc, h, newBuilder(), sortMode(""), logger)
	if err := srv.Run(ctx); err != nil {
		exitErr("serve", err)
	}
	logger.Sync()
}

func startWatcher(ctx context.Context, src catalog.Source, h *catalog.Holder) {
	fs, ok := src.(catalog.FileSource)
	if !ok {
		logger.Warn("watch needs a local data file", zap.String("source", src.String()))
		return
	}
	w, err := catalog.NewWatcher(fs.Path, h, logger)
	if err != nil {
		exitErr("watch", err)
	}
	if err := w.Start(ctx); err != nil {
		exitErr("watch", err)
	}
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
}
