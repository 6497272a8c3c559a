package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsen/citegraph/internal/config"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect configuration.

Settings come from, in increasing precedence:
  $XDG_CONFIG_HOME/citegraph/config.yml
  environment (CITEGRAPH_CACHE_DIR, CITEGRAPH_CACHE_BACKEND,
               CITEGRAPH_THRESHOLD, CITEGRAPH_PDF_ROOT; .env is read too)
  command-line flags

Keys:
  cache_dir      Directory for extracted PDF text (default .txt)
  cache_backend  dir or sqlite
  threshold      Match score a title must exceed (default 90)
  pragma_prefix  Prefix of directive lines in notes (default #pragma)
  label_width    Node title wrap column (default 28)
  pdf_root       Prefix for relative PDF attachment paths
  pdf_reader     Viewer for citegraph open (system, skim, preview, zathura, evince, okular)
  year_ranks     Rank papers by year in DOT output`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !humanOutput {
			return outputJSON(ConfigResponse{
				CacheDir:     cfg.CacheDir,
				CacheBackend: cfg.CacheBackend,
				Threshold:    cfg.Threshold,
				PragmaPrefix: cfg.PragmaPrefix,
				LabelWidth:   cfg.LabelWidth,
				PDFRoot:      cfg.PDFRoot,
				PDFReader:    cfg.PDFReader,
				YearRanks:    cfg.YearRanks,
			})
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		outputHuman("%s", data)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.Path()
		}
		if humanOutput {
			outputHuman("%s\n", path)
			return nil
		}
		return outputJSON(StatusResponse{Status: "ok", Path: path})
	},
}

// ConfigResponse is the response for config show.
type ConfigResponse struct {
	CacheDir     string  `json:"cache_dir"`
	CacheBackend string  `json:"cache_backend"`
	Threshold    float64 `json:"threshold"`
	PragmaPrefix string  `json:"pragma_prefix"`
	LabelWidth   int     `json:"label_width"`
	PDFRoot      string  `json:"pdf_root,omitempty"`
	PDFReader    string  `json:"pdf_reader,omitempty"`
	YearRanks    bool    `json:"year_ranks"`
}
