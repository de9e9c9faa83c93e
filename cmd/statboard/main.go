package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"statboard/internal/config"
	"statboard/internal/export"
	"statboard/internal/model"
	"statboard/internal/source"
	"statboard/internal/table"
	"statboard/internal/ui"
	"statboard/internal/util/logx"
	"statboard/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("statboard", version.String())
		return
	}

	// Setup cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting statboard %s: %s", version.String(), cfg.String())
	if cfg.ExportFormat != "" {
		if err := runExport(ctx, cfg); err != nil {
			if source.IsPayloadError(err) {
				// the upstream's message, verbatim
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(1)
		}
		return
	}

	if err := ui.Run(ctx, cfg); err != nil {
		logx.Errorf("statboard exited with error: %v", err)
		os.Exit(1)
	}
}

// runExport writes the rows visible under the configured sort and filters
// without starting the terminal UI.
func runExport(ctx context.Context, cfg *config.Config) error {
	p, err := source.Load(ctx, ui.SourceOptions(cfg))
	if err != nil {
		return err
	}
	rows, totals, err := model.BuildRows(p)
	if err != nil {
		return err
	}
	t := table.New(rows, totals)
	if err := ui.ApplyConfig(t, cfg); err != nil {
		return err
	}
	if err := export.Write(cfg.ExportFormat, cfg.ExportOut, t); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d rows to %s\n", t.VisibleCount(), cfg.ExportOut)
	return nil
}
