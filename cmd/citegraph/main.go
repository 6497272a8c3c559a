// Package main provides the citegraph CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// Resolved once per invocation by setup.
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var (
	flagConfig       string
	flagVerbose      bool
	flagLogFormat    string
	flagCacheDir     string
	flagCacheBackend string
	flagPDFRoot      string
	flagThreshold    float64
	flagPragmaPrefix string
)

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		var silent silentExitError
		if errors.As(err, &silent) {
			os.Exit(silent.code)
		}
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citegraph",
	Short: "Build a citation graph from a reference manager export",
	Long: `citegraph builds a citation graph of the papers in a bibliography export.

Each paper with an attached PDF has its references section scanned for the
titles of the other papers in the library. Matches become edges from the
cited paper to the citing one. Notes on a paper can steer the result:

  #pragma falsepositive <id>    ignore a bogus match against <id>
  #pragma replaces <id>         this paper supersedes <id> (e.g. a preprint)
  #pragma set nodecolor=<c>     color the node

The graph is written as Graphviz DOT by default. Diagnostics go to stderr,
so stdout can be piped straight into dot.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	pf.StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/citegraph/config.yml)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every title comparison")
	pf.StringVar(&flagLogFormat, "log-format", logging.FormatConsole, "Log format: console or json")
	pf.StringVar(&flagCacheDir, "cache-dir", "", "Directory for extracted PDF text")
	pf.StringVar(&flagCacheBackend, "cache-backend", "", "Text cache backend: dir or sqlite")
	pf.StringVar(&flagPDFRoot, "pdf-root", "", "Prefix for relative PDF attachment paths")
	pf.Float64Var(&flagThreshold, "threshold", 0, "Match score a title must exceed (0-100)")
	pf.StringVar(&flagPragmaPrefix, "pragma-prefix", "", "Prefix marking directive lines in notes")
	rootCmd.Version = Version
}

// setup loads configuration and builds the logger before any command runs.
// Precedence: flags, then environment (including .env), then the config file.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	c, err := config.Load(flagConfig)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("cache-dir") {
		c.CacheDir = config.ExpandPath(flagCacheDir)
	}
	if flags.Changed("cache-backend") {
		c.CacheBackend = flagCacheBackend
	}
	if flags.Changed("pdf-root") {
		c.PDFRoot = config.ExpandPath(flagPDFRoot)
	}
	if flags.Changed("threshold") {
		c.Threshold = flagThreshold
	}
	if flags.Changed("pragma-prefix") {
		c.PragmaPrefix = flagPragmaPrefix
	}
	if err := c.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	l, err := logging.New(logging.Options{Verbose: flagVerbose, Format: flagLogFormat})
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	cfg = c
	logger = l
	return nil
}
