// Command hrrprobe builds holographic residue bases and measures the
// accuracy of arithmetic on them.
//
//	hrrprobe basis --bound 510510 --beta 75 --out Parameters
//	hrrprobe check --op mul --limit 714
//	hrrprobe sweep --betas 5,25,75 --plot error_rate.png
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hrr-numbers/probe"
	"hrr-numbers/prof"
)

type app struct {
	v       *viper.Viper
	log     *logrus.Logger
	cfgFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{v: viper.New(), log: logrus.New()}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		a.log.Fatalf("hrrprobe: %v", err)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hrrprobe",
		Short:         "Holographic residue number bases and their accuracy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.Int64("bound", 510510, "magnitude bound N; the basis product is at least N")
	pf.Float64("beta", 75, "cleanup sharpness β")

	root.AddCommand(a.basisCmd(), a.checkCmd(), a.sweepCmd())
	return root
}

// init loads configuration (defaults < file < HRR_* env < flags) and sets
// up logging.
func (a *app) init(cmd *cobra.Command) error {
	probe.SetDefaults(a.v)
	a.v.SetEnvPrefix("HRR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return err
		}
	}
	bind(a.v, cmd.Flags(), map[string]string{
		"log_level":          "log-level",
		"bound":              "bound",
		"beta":               "beta",
		"out":                "out",
		"plot":               "plot",
		"betas":              "betas",
		"probe.op":           "op",
		"probe.limit":        "limit",
		"probe.sample":       "sample",
		"probe.seed":         "seed",
		"probe.workers":      "workers",
		"probe.max_failures": "max-failures",
	})

	setupLogger(a.log, a.v.GetString("log_level"))
	prof.Logger = a.log
	if a.cfgFile != "" {
		a.log.WithField("file", a.v.ConfigFileUsed()).Debug("config loaded")
	}
	return nil
}

// bind attaches every flag the command defines to its viper key.
func bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func setupLogger(logger *logrus.Logger, level string) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}
