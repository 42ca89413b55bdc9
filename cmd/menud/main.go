package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navmenu/internal/config"
	"github.com/mchmarny/navmenu/pkg/logger"
	"github.com/mchmarny/navmenu/pkg/menu"
)

var version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"

const flagCondition = "condition"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the menud command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "menud",
		Short: "Serve and inspect navigation menus",
		Long: `menud loads a navigation menu from a YAML definition and either serves
the menu resolved for each page as JSON, or prints it for a given page URI.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			logger.SetDefaultLoggerWithLevel("menud", version, s.LogLevel)
			return nil
		},
	}

	root.SetVersionTemplate(`{{printf "menud version %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringP(config.KeyFile, "f", config.DefaultFile, "menu definition file")
	pf.String(config.KeyLang, "", "label language, a tag or an Accept-Language value")
	pf.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")
	pf.StringToString(flagCondition, nil, "display condition values, e.g. --condition admin=false")

	root.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)

	return root
}

// loadMenu loads the definition named by the settings, registering the
// conditions given on the command line.
func loadMenu(cmd *cobra.Command, s config.Settings) (*menu.Menu, error) {
	conds, err := conditionsFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	opts := []config.BuildOption{config.WithConditions(conds)}
	if s.Lang != "" {
		opts = append(opts, config.WithLang(s.Lang))
	}

	return config.Load(s.File, opts...)
}

func conditionsFromFlags(cmd *cobra.Command) (config.Conditions, error) {
	raw, err := cmd.Flags().GetStringToString(flagCondition)
	if err != nil {
		return nil, err
	}

	conds := config.Conditions{}
	for name, val := range raw {
		ok, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for condition %s: %w", val, name, err)
		}
		conds[name] = menu.ConditionFunc(func() bool { return ok })
	}

	return conds, nil
}
