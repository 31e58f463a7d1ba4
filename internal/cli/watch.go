package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/intentfw/ifw/internal/loader"
	"github.com/intentfw/ifw/internal/provider/mock"
	"github.com/intentfw/ifw/internal/store"
	"github.com/intentfw/ifw/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load the rule directories, then reload on changes until interrupted",
	Long: `watch runs the daemon's full reload lifecycle outside the host: an
initial load of <data-dir>/ifw plus the configured read-only
directories, then a filesystem watch on the writable directory that
debounces bursts of file events and publishes a freshly parsed store
after each one. Every load prints its per-kind summary.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(level)

	st, summary, err := loader.Load(cfg.RulesDir, cfg.EffectiveReadonlyDirs(), log)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	fmt.Println(summary.String())

	collab := mock.New()
	handle := store.NewHandle(st)

	watcher.DebounceInterval = cfg.Debounce()
	w, err := watcher.New(cfg.RulesDir, log, func() {
		st, summary, err := loader.Load(cfg.RulesDir, cfg.EffectiveReadonlyDirs(), log)
		if err != nil {
			log.Error().Err(err).Msg("ifw: reload failed, keeping previous store")
			return
		}
		handle.Publish(collab, st)
		fmt.Println(summary.String())
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", cfg.RulesDir, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		w.Close()
	}()

	w.Start()
	return nil
}
