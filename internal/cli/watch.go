package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moddle-labs/moddle/internal/loader"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <type>",
	Short: "Re-describe a type whenever package files change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", loader.DefaultDebounce, "Quiet period before reloading")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	paths := packagePaths()
	if len(paths) == 0 {
		return fmt.Errorf("no package paths configured; pass --packages or run 'config set packages <dir>'")
	}

	w, err := loader.NewWatcher(paths, loaderOptions(log.Logger), watchDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = w.Run(ctx, func(pkgs []*meta.Package, err error) {
		fmt.Fprintf(out, "--- %s\n", time.Now().Format(time.RFC3339))
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		m, err := buildModel(pkgs, log.Logger)
		if err == nil {
			err = describe(out, m, args[0])
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
