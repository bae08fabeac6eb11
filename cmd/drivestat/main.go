// Command drivestat appends the capacity of a set of volumes to a monthly CSV log.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/drivestat/pkg/config"
	"github.com/danpilch/drivestat/pkg/debug"
	"github.com/danpilch/drivestat/pkg/logfile"
	"github.com/danpilch/drivestat/pkg/logging"
	"github.com/danpilch/drivestat/pkg/output"
	"github.com/danpilch/drivestat/pkg/record"
	"github.com/danpilch/drivestat/pkg/sampler"
	"github.com/danpilch/drivestat/pkg/volume"
)

// Version is the release reported by --version.
var Version = "0.1.0"

const (
	usageMessage = "ドライブレターを引数として指定してください。例: D F"
	monthLayout  = "2006-01"
)

type options struct {
	configPath string
	baseDir    string
	logLevel   string
	timing     bool
	month      string
	last       int

	stdout   io.Writer
	stderr   io.Writer
	provider volume.Provider
	clock    clockwork.Clock
}

func main() {
	os.Exit(run(os.Args[1:], &options{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		provider: volume.NewSystem(),
		clock:    clockwork.NewRealClock(),
	}))
}

func run(args []string, o *options) int {
	cmd := newRootCommand(o)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		logger := logrus.New()
		logger.SetOutput(o.stderr)
		logger.Error(err)
		return 1
	}
	return 0
}

func newRootCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "drivestat <volume> [volume...]",
		Short:         "Append the total and free capacity of volumes to a monthly CSV log",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageMessage)
				return nil
			}
			return o.sample(cmd, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default "+config.FileName+" next to the executable)")
	flags.StringVar(&o.baseDir, "base-dir", "", "directory that holds the log/ folder (default: executable directory)")
	flags.StringVar(&o.logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&o.timing, "timing", false, "print per-volume query timings to stderr")

	cmd.AddCommand(newShowCommand(o))
	return cmd
}

func newShowCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [volume...]",
		Short: "Render the log of a volume set, or list log files when no volume is given",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.show(cmd, args)
		},
	}
	cmd.Flags().StringVar(&o.month, "month", "", "month to show as YYYY-MM (default: current month)")
	cmd.Flags().IntVar(&o.last, "last", 0, "show only the most recent N samples")
	return cmd
}

// setup loads the configuration and applies flag overrides on top of it.
func (o *options) setup() (*logrus.Logger, *logfile.Resolver, error) {
	path, required := o.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, nil, err
	}
	if o.baseDir != "" {
		cfg.Output.BaseDir = o.baseDir
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	logger, err := logging.New(o.stderr, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Log.File != "" {
		if err := logging.AddFileHook(logger, cfg.Log.File); err != nil {
			return nil, nil, err
		}
	}
	logger.WithFields(logrus.Fields{
		"config":   path,
		"base_dir": cfg.Output.BaseDir,
	}).Debug("Configuration loaded")

	return logger, logfile.NewResolver(cfg.Output.BaseDir), nil
}

func (o *options) sample(cmd *cobra.Command, ids []string) error {
	logger, resolver, err := o.setup()
	if err != nil {
		return err
	}

	provider := o.provider
	var timed *debug.TimedProvider
	if o.timing {
		timed = debug.NewTimedProvider(provider)
		provider = timed
	}

	if _, err := sampler.New(provider, resolver, o.clock, logger).Run(ids); err != nil {
		return err
	}
	if timed != nil {
		debug.TimingReport(cmd.ErrOrStderr(), timed.Timings)
	}
	return nil
}

func (o *options) show(cmd *cobra.Command, ids []string) error {
	_, resolver, err := o.setup()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		names, err := resolver.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no log files in %s\n", resolver.Dir())
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	month := o.clock.Now()
	if o.month != "" {
		month, err = time.ParseInLocation(monthLayout, o.month, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --month %q, want YYYY-MM", o.month)
		}
	}

	path := resolver.Path(ids, month)
	rows, err := logfile.Read(path)
	if err != nil {
		return err
	}
	if o.last > 0 && len(rows)-1 > o.last {
		rows = append([]record.Record{rows[0]}, rows[len(rows)-o.last:]...)
	}
	return output.NewFormatter(cmd.OutOrStdout()).Render(filepath.Base(path), rows)
}
