package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/intentfw/ifw/internal/loader"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Force an out-of-band reload of the rule directories and print the summary",
	Long: `reload re-parses every rule file under <data-dir>/ifw plus the
configured read-only directories, the same pass the watcher's debounced
callback performs, and prints the per-kind counts.`,
	RunE: runReload,
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	_, summary, err := loader.Load(cfg.RulesDir, cfg.EffectiveReadonlyDirs(), zerolog.New(zerolog.NewConsoleWriter()))
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	fmt.Println(summary.String())
	return nil
}
