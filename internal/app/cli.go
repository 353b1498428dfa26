package app

import (
	"fmt"
	"io"
	"os"

	"github.com/Egor213/LogiScan/internal/config"
	"github.com/Egor213/LogiScan/pkg/logger"
	"github.com/spf13/cobra"
)

type cliFlags struct {
	configPath      string
	logLevel        string
	auditFile       string
	outDir          string
	summary         string
	security        string
	errorsReport    string
	metricsTextfile string
	port            string
}

// NewRootCommand builds the logiscan CLI. Running it without a subcommand
// behaves like "analyze".
func NewRootCommand(out io.Writer) *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "logiscan [path]",
		Short: "Analyze server access logs for traffic statistics and security incidents",
		Long: `LogiScan reads an access log in the common log format, collects traffic
statistics, detects brute-force logins, forbidden access and SQL injection
probes, and writes summary, security and error reports.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, flags, args, out)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default: $APP_CONFIG_PATH or infra/config.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.auditFile, "audit-file", "", "append operational log records to this file (empty disables)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze one log file and write the reports",
		Example: `  logiscan analyze server.log
  logiscan analyze /var/log/nginx/access.log --out-dir reports`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, flags, args, out)
		},
	}
	for _, cmd := range []*cobra.Command{root, analyzeCmd} {
		f := cmd.Flags()
		f.StringVarP(&flags.outDir, "out-dir", "o", "", "directory for relative report paths")
		f.StringVar(&flags.summary, "summary", "", "summary report path")
		f.StringVar(&flags.security, "security", "", "security report path")
		f.StringVar(&flags.errorsReport, "errors", "", "error report path")
		f.StringVar(&flags.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer closer.Close()
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = flags.port
			}
			return Serve(cfg)
		},
	}
	serveCmd.Flags().StringVarP(&flags.port, "port", "p", "", "HTTP port")

	root.AddCommand(analyzeCmd, serveCmd)

	return root
}

// setup loads config, applies persistent flag overrides and configures logging.
func setup(cmd *cobra.Command, flags *cliFlags) (*config.Config, io.Closer, error) {
	cfg, err := config.New(flags.configPath)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("audit-file") {
		cfg.Log.AuditFile = flags.auditFile
	}

	return cfg, logger.SetupLogger(cfg.Log.Level, cfg.Log.AuditFile), nil
}

func runAnalyze(cmd *cobra.Command, flags *cliFlags, args []string, out io.Writer) error {
	cfg, closer, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	defer closer.Close()

	if len(args) == 1 {
		cfg.Input.Path = args[0]
	}

	overrides := []struct {
		name string
		src  string
		dst  *string
	}{
		{"out-dir", flags.outDir, &cfg.Reports.Dir},
		{"summary", flags.summary, &cfg.Reports.Summary},
		{"security", flags.security, &cfg.Reports.Security},
		{"errors", flags.errorsReport, &cfg.Reports.Errors},
		{"metrics-textfile", flags.metricsTextfile, &cfg.Metrics.Textfile},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.name) {
			*o.dst = o.src
		}
	}

	_, err = Analyze(cmd.Context(), cfg, out)
	return err
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
