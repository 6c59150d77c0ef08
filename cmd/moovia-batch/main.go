package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/constants"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/common"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/export"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/extract"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/ingest"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/parse"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moovia-batch",
		Short:         "Convert Moovia order-picking PDFs to Unilog Excel sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd(), newWatchCmd())
	return root
}

// newProcessor builds the pipeline the same way the daemon does, honoring the
// QUANTITY_WINDOW_LINES override from the environment unless --window is set.
func newProcessor(window int, logger *slog.Logger) *pipeline.Processor {
	cfg := common.LoadConfig()
	if window < 0 {
		window = cfg.Parser.QuantityWindow
	}
	extractor := extract.NewPDFExtractor(extract.Config{Preflight: true}, logger)
	parser := parse.NewItemParser(window)
	return pipeline.NewProcessor(extractor, parser, export.NewService(logger), logger)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func newConvertCmd() *cobra.Command {
	var (
		dir       string
		out       string
		zipBundle bool
		window    int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "convert [pdf...]",
		Short: "Convert the given PDFs (or a whole directory) to XLSX files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			ctx := cmd.Context()

			files := append([]string(nil), args...)
			if dir != "" {
				scanned, stats, err := ingest.ScanDirectory(dir, true)
				if err != nil {
					return fmt.Errorf("scan %s: %w", dir, err)
				}
				logger.Info("directory scanned", "root", dir, "scanned", stats.Scanned, "matched", stats.Matched)
				files = append(files, scanned...)
			}
			if len(files) == 0 {
				return fmt.Errorf("nothing to convert: pass PDF paths or --dir")
			}

			uploads := make([]pipeline.Upload, 0, len(files))
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				uploads = append(uploads, pipeline.Upload{Name: filepath.Base(path), Data: data})
			}

			proc := newProcessor(window, logger)
			batch, err := proc.ProcessBatch(ctx, uploads)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			for _, name := range batch.Artifacts.Names() {
				dest := filepath.Join(out, name)
				if err := os.WriteFile(dest, batch.Artifacts.Get(name), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dest, err)
				}
				logger.Info("artifact written", "path", dest)
			}
			if zipBundle && batch.Archive != nil {
				dest := filepath.Join(out, constants.ArchiveName)
				if err := os.WriteFile(dest, batch.Archive, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dest, err)
				}
				logger.Info("archive written", "path", dest, "entries", batch.Artifacts.Len())
			}

			for _, doc := range batch.Documents {
				if doc.Err != nil {
					logger.Warn("document failed", "source", doc.SourceName, "err", doc.Err)
				}
			}
			if batch.Succeeded() == 0 {
				return fmt.Errorf("no document could be processed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to scan for PDFs (recursive)")
	cmd.Flags().StringVar(&out, "out", ".", "output directory for XLSX files")
	cmd.Flags().BoolVar(&zipBundle, "zip", false, "also write the ZIP bundle")
	cmd.Flags().IntVar(&window, "window", -1, "quantity look-ahead window in lines (default from env, 3)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var (
		dirs    []string
		out     string
		initial bool
		window  int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch drop folders and convert PDFs as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			cfg := common.LoadConfig()
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			proc := newProcessor(window, logger)
			evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
				Roots:       dirs,
				InitialScan: initial,
				Debounce:    cfg.Ingest.WatchDebounce,
			}, logger)
			if err != nil {
				return err
			}
			logger.Info("watching", "roots", dirs, "out", out)

			for {
				select {
				case <-ctx.Done():
					return nil
				case werr, ok := <-errCh:
					if ok && werr != nil {
						logger.Error("watch error", "err", werr)
					}
				case path, ok := <-evCh:
					if !ok {
						return nil
					}
					data, err := os.ReadFile(path)
					if err != nil {
						logger.Warn("read failed", "path", path, "err", err)
						continue
					}
					doc, err := proc.ProcessDocument(ctx, pipeline.Upload{Name: filepath.Base(path), Data: data})
					if err != nil {
						logger.Warn("document failed", "path", path, "err", err)
						continue
					}
					dest := filepath.Join(out, doc.ArtifactName)
					if err := os.WriteFile(dest, doc.XLSX, 0o644); err != nil {
						logger.Error("write failed", "path", dest, "err", err)
						continue
					}
					logger.Info("artifact written", "source", path, "path", dest, "rows", len(doc.Table.Rows))
				}
			}
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "directory to watch (repeatable)")
	cmd.Flags().StringVar(&out, "out", ".", "output directory for XLSX files")
	cmd.Flags().BoolVar(&initial, "initial-scan", false, "process PDFs already in the watched directories")
	cmd.Flags().IntVar(&window, "window", -1, "quantity look-ahead window in lines (default from env, 3)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
