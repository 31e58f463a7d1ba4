package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/intentfw/ifw/internal/audit"
	"github.com/intentfw/ifw/internal/config"
	"github.com/intentfw/ifw/internal/firewall"
	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/loader"
	"github.com/intentfw/ifw/internal/provider/mock"
	"github.com/intentfw/ifw/internal/store"
)

var (
	checkAction        string
	checkComponent     string
	checkTargetPackage string
	checkCallerUID     int32
	checkQuery         bool
)

var checkCmd = &cobra.Command{
	Use:   "check <activity|broadcast|service|provider|package>",
	Short: "Run one simulated dispatch through the loaded rules and print the decision",
	Long: `check loads every rule file under <data-dir>/ifw plus any configured
read-only directories, then evaluates a single simulated dispatch the
way the host dispatcher would call into the firewall:

  ifwctl check activity --action a.b.C --component com.x/.Main
  ifwctl check package --target-package com.x --query`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkAction, "action", "", "Intent action string")
	checkCmd.Flags().StringVar(&checkComponent, "component", "", "Resolved component, as pkg/.Cls")
	checkCmd.Flags().StringVar(&checkTargetPackage, "target-package", "", "Target package (kind=package only)")
	checkCmd.Flags().Int32Var(&checkCallerUID, "caller-uid", 10050, "Simulated caller UID")
	checkCmd.Flags().BoolVar(&checkQuery, "query", false, "Evaluate the query-path variant instead of enforcement")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, ok := kindForArg(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q: want activity|broadcast|service|provider|package", args[0])
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	st, _, err := loader.Load(cfg.RulesDir, cfg.EffectiveReadonlyDirs(), zerolog.Nop())
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	sink, err := audit.NewJSONLSinkWithLimit(cfg.AuditLogPath, cfg.AuditLogMaxBytes)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer sink.Close()

	collab := mock.New()
	fw := firewall.New(store.NewHandle(st), collab, collab, sink)

	var allowed bool
	if kind == intent.KindPackage {
		req := firewall.PackageQueryRequest{TargetPackage: checkTargetPackage, CallerUID: checkCallerUID}
		allowed = fw.CheckQueryPackage(req)
	} else {
		comp, _ := intent.ParseComponent(checkComponent)
		req := firewall.EnforceRequest{
			Resolved:  comp,
			Intent:    &intent.Intent{Action: checkAction},
			CallerUID: checkCallerUID,
		}
		allowed = dispatchFor(fw, kind, req, checkQuery)
	}

	printDecision(allowed)
	return nil
}

func dispatchFor(fw *firewall.Firewall, kind intent.Kind, req firewall.EnforceRequest, query bool) bool {
	switch kind {
	case intent.KindActivity:
		if query {
			return fw.CheckQueryActivity(req)
		}
		return fw.CheckStartActivity(req)
	case intent.KindService:
		if query {
			return fw.CheckQueryService(req)
		}
		return fw.CheckService(req)
	case intent.KindBroadcast:
		if query {
			return fw.CheckQueryReceiver(req)
		}
		return fw.CheckBroadcast(req)
	case intent.KindProvider:
		if query {
			return fw.CheckQueryProvider(req)
		}
		return fw.CheckProvider(req)
	default:
		return true
	}
}

func kindForArg(s string) (intent.Kind, bool) {
	switch s {
	case "activity":
		return intent.KindActivity, true
	case "broadcast":
		return intent.KindBroadcast, true
	case "service":
		return intent.KindService, true
	case "provider":
		return intent.KindProvider, true
	case "package":
		return intent.KindPackage, true
	default:
		return "", false
	}
}

func loadCLIConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(dataDir, config.DefaultConfigDir, config.DefaultFile)
	}
	return config.Load(path, dataDir)
}

func printDecision(allowed bool) {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	if allowed {
		if color {
			fmt.Println("\x1b[32mALLOW\x1b[0m")
		} else {
			fmt.Println("ALLOW")
		}
		return
	}
	if color {
		fmt.Println("\x1b[31mBLOCK\x1b[0m")
	} else {
		fmt.Println("BLOCK")
	}
}
