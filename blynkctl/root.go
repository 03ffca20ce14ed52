package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ettom/blynk-lightswitch/blynkctl/options"
	"github.com/ettom/blynk-lightswitch/hlog"
	"github.com/ettom/blynk-lightswitch/internal/action"
	"github.com/ettom/blynk-lightswitch/internal/devices"
	"github.com/ettom/blynk-lightswitch/pkg/blynk"
)

var cfg *devices.Config

var rootCmd = &cobra.Command{
	Use:   "blynkctl [device|group...] action",
	Short: "Interact with the blynk HTTP api",
	Long: `Read and set the state of configured devices through the blynk HTTP api.

All arguments but the last select devices: device names, a configured
group name, or "all"/"a". The last argument is the action.

Actions:
  on         Turn the device(s) on
  of(f)      Turn the device(s) off
  f(lip)     Flip the device(s)
  j(ust)     Turn the device(s) on and turn off every other device in the same group
  p(rint)    Print the status of the device(s) as a table
  s(tatus)   Print the status of the device(s)
  <number>   Set the pin(s) to an arbitrary value`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		hlog.Init(options.Flags.Verbose, options.Flags.Debug)
		cmd.SetContext(logr.NewContext(cmd.Context(), hlog.Logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return cmd.Help()
		}

		log := hlog.Logger
		var err error
		cfg, err = loadConfig()
		if err != nil {
			log.Error(err, "Failed to load configuration")
			return err
		}

		selectors, token := args[:len(args)-1], args[len(args)-1]
		act, err := action.Parse(token)
		if err != nil {
			return err
		}
		names := cfg.Resolve(selectors, act.Read())

		ctx, cancel := options.CommandLineContext(cmd.Context())
		defer cancel()

		d := &action.Dispatcher{
			Cfg:    cfg,
			Client: blynk.NewClient(cfg, options.Flags.Server, hlog.GetLogger("blynk")),
			Out:    cmd.OutOrStdout(),
			Log:    log,
		}
		return d.Run(ctx, act, names)
	},
}

// loadConfig reads the device table from --config, from the usual
// config directories, or falls back to the compiled-in table.
func loadConfig() (*devices.Config, error) {
	v := viper.New()
	if options.Flags.Config != "" {
		v.SetConfigFile(options.Flags.Config)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		return devices.Load(v)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return devices.Builtin(), nil
		}
		return nil, err
	}
	return devices.Load(v)
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "blynkctl"), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Verbose, "verbose", "v", false, "verbose output (info level, mutually exclusive with --debug and --quiet)")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Debug, "debug", "d", false, "debug output (debug level, mutually exclusive with --verbose and --quiet)")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Quiet, "quiet", "q", false, "quiet output (error level only, mutually exclusive with --verbose and --debug)")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Json, "json", "j", false, "output in json format")
	rootCmd.PersistentFlags().StringVarP(&options.Flags.Config, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&options.Flags.Server, "server", "S", "", "blynk server base URL (overrides config)")
	rootCmd.PersistentFlags().DurationVarP(&options.Flags.Wait, "wait", "w", 0, "maximum time to wait for the command to finish (0 = wait indefinitely)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "debug", "quiet")

	rootCmd.AddCommand(versionCmd)
}

var Commit string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Commit)
	},
}
