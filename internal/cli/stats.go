package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/loader"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-kind resolver index shape after loading the rule directories",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	st, summary, err := loader.Load(cfg.RulesDir, cfg.EffectiveReadonlyDirs(), zerolog.Nop())
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	fmt.Println(summary.String())

	for _, kind := range []intent.Kind{intent.KindActivity, intent.KindBroadcast, intent.KindService, intent.KindProvider} {
		s := st.Resolver(kind).Stats()
		fmt.Printf("%-10s actions=%d filters=%d components=%d matchall=%d\n",
			kind, s.Actions, s.FilterCount, s.ComponentMap, s.MatchAll)
	}
	fmt.Printf("%-10s rules=%d\n", intent.KindPackage, len(st.Package))
	return nil
}
