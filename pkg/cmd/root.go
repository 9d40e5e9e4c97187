package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/config"
	"github.com/shrishtravels/routegen/pkg/routegen/logging"
)

var (
	cfgFile string
	v       = config.New()
)

var RootCmd = &cobra.Command{
	Use:           RootCmdName,
	Short:         RootCmdShort,
	Long:          RootCmdLong,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {

	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", RootCmdName, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./routegen.yaml if present)")
	flags.String(config.KeyEnv, "development", "environment (development|production)")
	flags.String(config.KeyLogLevel, "", "log level override (debug|info|warn|error)")
	flags.String(config.KeySiteDir, ".", "site root; relative paths resolve against it")
	flags.String(config.KeyCacheFile, "assets/data/routes.json", "local route cache")
	v.BindPFlags(flags)

	RootCmd.AddCommand(BuildCmd)
	RootCmd.AddCommand(ServeCmd)
}

func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(RootCmdName)
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			fmt.Fprintf(os.Stderr, "reading config %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}
}

// setup loads the configuration and the logger for a subcommand.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.NewNamed(cfg.Env, RootCmdName, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}
	return cfg, log, nil
}
