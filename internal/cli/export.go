package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/konnash/konnash/internal/export"
	"github.com/konnash/konnash/internal/storage"
	"github.com/konnash/konnash/internal/storage/sqlite"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export {debts|payments}",
	Short: "Export the notebook as CSV",
	Long: `Export writes the debts or payments ledger as CSV, with client and
category names joined in. Output goes to stdout unless --output names a file.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"debts", "payments"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var w io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := runExport(cmd.Context(), store, args[0], w); err != nil {
			return err
		}
		if exportOutput != "" {
			slog.Info("export written", "kind", args[0], "file", exportOutput)
		}
		return nil
	},
}

func runExport(ctx context.Context, store storage.Store, kind string, w io.Writer) error {
	switch kind {
	case "debts":
		return export.WriteDebtsCSV(ctx, store, w)
	case "payments":
		return export.WritePaymentsCSV(ctx, store, w)
	default:
		return fmt.Errorf("unknown export kind %q", kind)
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
