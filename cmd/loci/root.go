package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"loci/internal/config"
	"loci/internal/corpus/memory"
	"loci/internal/locus"
	"loci/internal/logging"
	"loci/internal/service"
)

var (
	cfgFile    string
	jsonOutput bool

	appCfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "loci",
	Short: "Compare classical citation loci and line-number Senecan passages",
	Long: `Loci parses citations such as "Book 3 line 45" into dotted loci,
checks whether a locus falls inside a speech or just before it, and turns
loosely numbered Senecan passages into speech records that can be
compared with DICES speeches.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		switch {
		case cfgFile != "":
			appCfg, err = config.Load(cfgFile)
		case cmd.Annotations[corpusAnnotation] != "":
			appCfg, _, err = config.LoadDefault()
		default:
			appCfg, _, err = config.Find()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level := appCfg.Logging.Level
		if env := os.Getenv("LOCI_LOG_LEVEL"); env != "" {
			level = env
		}
		// keep diagnostics out of the JSON stream
		var logOut io.Writer = os.Stdout
		if jsonOutput {
			logOut = cmd.ErrOrStderr()
		}
		logging.InitLoggerTo(logOut, logging.ParseLevel(level), logging.ParseFormat(appCfg.Logging.Format))
		return nil
	},
}

// corpusAnnotation marks commands that read the configured corpus. Only
// these create the user config file when none exists.
const corpusAnnotation = "loci/corpus"

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./loci.yaml or ~/.config/loci/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		extractCmd,
		compareCmd,
		withinCmd,
		introCmd,
		linesCmd,
		speechCmd,
		locateCmd,
		featuresCmd,
		browseCmd,
		versionCmd,
	)
}

// verdict renders a comma-ok comparison result.
func verdict(v, ok bool) string {
	if !ok {
		return "unknown"
	}
	if v {
		return "true"
	}
	return "false"
}

// printVerdict writes a comparison result as text, or as an object whose
// "result" is null when the verdict is unknown.
func printVerdict(cmd *cobra.Command, v, ok bool, fields map[string]any) error {
	if !jsonOutput {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), verdict(v, ok))
		return err
	}
	var result *bool
	if ok {
		result = &v
	}
	fields["result"] = result
	fields["known"] = ok
	return printJSON(cmd.OutOrStdout(), fields)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// readInput reads the named file, or stdin when the name is "-" or missing.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

// loadService builds a service over the corpus files named in the config.
func loadService() (*service.LociService, string, error) {
	svc := service.NewLociService(memory.NewStorage(), locus.New(logging.GetLogger()), appCfg.Locus.IntroWindow)
	ns, err := svc.IngestSeneca(appCfg.Corpus.Seneca)
	if err != nil {
		return nil, "", fmt.Errorf("ingest seneca: %w", err)
	}
	nd, err := svc.IngestDices(appCfg.Corpus.Dices)
	if err != nil {
		return nil, "", fmt.Errorf("ingest dices: %w", err)
	}
	summary := fmt.Sprintf("%d Seneca passages, %d DICES speeches (%s)", ns, nd,
		strings.Join(append(append([]string{}, appCfg.Corpus.Seneca...), appCfg.Corpus.Dices...), ", "))
	return svc, summary, nil
}
