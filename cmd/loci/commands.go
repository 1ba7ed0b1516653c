package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"loci/internal/domain"
	"loci/internal/features"
	"loci/internal/linearray"
	"loci/internal/locus"
	"loci/internal/logging"
	"loci/internal/seneca"
	"loci/internal/tui"
)

var (
	introWindow int
	speechID    string
	topFeatures int
	normalize   bool
	stopwords   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <citation>...",
	Short: "Convert citations like \"Book 3 line 45\" to dotted loci",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		type row struct {
			Citation string `json:"citation"`
			Locus    string `json:"locus,omitempty"`
			OK       bool   `json:"ok"`
		}
		rows := make([]row, 0, len(args))
		for _, a := range args {
			loc, ok := locus.ExtractLoc(a)
			rows = append(rows, row{Citation: a, Locus: loc, OK: ok})
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rows)
		}
		for _, r := range rows {
			if !r.OK {
				r.Locus = "none"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Citation, r.Locus)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <left> <right>",
	Short: "Report whether one locus unit sorts at or before another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		le, ok := locus.New(logging.GetLogger()).CompareUnits(args[0], args[1])
		return printVerdict(cmd, le, ok, map[string]any{"left": args[0], "right": args[1]})
	},
}

var withinCmd = &cobra.Command{
	Use:   "within <locus> <first-last>",
	Short: "Report whether a locus falls inside a range such as 3.45-3.60",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		span, err := locus.ParseSpan(args[1])
		if err != nil {
			return err
		}
		loc, ok := locus.Normalize(args[0])
		if !ok {
			loc = args[0]
		}
		in, known := locus.New(logging.GetLogger()).InSpeech(loc, span)
		return printVerdict(cmd, in, known, map[string]any{"locus": loc, "span": span.String()})
	},
}

var introCmd = &cobra.Command{
	Use:   "intro <locus> <first-last>",
	Short: "Report whether a locus falls just before the start of a range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		span, err := locus.ParseSpan(args[1])
		if err != nil {
			return err
		}
		loc, ok := locus.Normalize(args[0])
		if !ok {
			loc = args[0]
		}
		window := introWindow
		if window <= 0 {
			window = appCfg.Locus.IntroWindow
		}
		intro, known := locus.New(logging.GetLogger()).IsSpeechIntro(loc, span, window)
		return printVerdict(cmd, intro, known, map[string]any{"locus": loc, "span": span.String(), "window": window})
	},
}

var linesCmd = &cobra.Command{
	Use:   "lines [file|-]",
	Short: "Number the lines of a text block",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return printLines(cmd, linearray.Build(text))
	},
}

var speechCmd = &cobra.Command{
	Use:   "speech [file|-]",
	Short: "Build a Seneca speech record from a passage",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		s, err := seneca.NewSpeech(text, speechID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"id":         s.ID(),
				"spkr":       s.Speaker(),
				"lang":       s.Lang(),
				"tags":       s.Tags(),
				"l_fi":       s.FirstLine(),
				"l_la":       s.LastLine(),
				"text":       s.Text(),
				"line_array": s.Lines(),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.String())
		return printLines(cmd, s.Lines())
	},
}

var locateCmd = &cobra.Command{
	Use:         "locate <citation>",
	Short:       "Find corpus speeches containing or introduced by a citation",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{corpusAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadService()
		if err != nil {
			return err
		}
		res, err := svc.Locate(args[0], introWindow)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"locus":       res.Locus,
				"containing":  speechSummaries(res.Containing),
				"introducing": speechSummaries(res.Introducing),
			})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "locus %s\n", res.Locus)
		for _, s := range res.Containing {
			fmt.Fprintf(out, "contains\t%s\t%s\t%s-%s\n", s.ID(), s.Speaker(), s.FirstLine(), s.LastLine())
		}
		for _, s := range res.Introducing {
			fmt.Fprintf(out, "introduces\t%s\t%s\t%s-%s\n", s.ID(), s.Speaker(), s.FirstLine(), s.LastLine())
		}
		return nil
	},
}

var featuresCmd = &cobra.Command{
	Use:         "features",
	Short:       "Print lemma-frequency vectors for the corpus",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{corpusAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadService()
		if err != nil {
			return err
		}
		var lem domain.Lemmatizer
		if stopwords {
			lem = features.NewTokenLemmatizer(features.LatinStopwords...)
		}
		ex := features.NewExtractor(lem)
		speeches := svc.Speeches()
		featureset := ex.Select(speeches, topFeatures)
		rows := ex.Matrix(speeches, featureset, normalize)

		if jsonOutput {
			out := make([]map[string]any, len(speeches))
			for i, s := range speeches {
				out[i] = map[string]any{"id": s.ID(), "tags": s.Tags(), "features": rows[i]}
			}
			return printJSON(cmd.OutOrStdout(), out)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "id\t%s\n", strings.Join(featureset, "\t"))
		for i, s := range speeches {
			vals := make([]string, len(featureset))
			for j, f := range featureset {
				vals[j] = fmt.Sprintf("%.4g", rows[i][f])
			}
			fmt.Fprintf(w, "%s\t%s\n", s.ID(), strings.Join(vals, "\t"))
		}
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:         "browse",
	Short:       "Interactively look up citations against the corpus",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{corpusAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, summary, err := loadService()
		if err != nil {
			return err
		}
		m := tui.New(svc, svc.Window(), summary)
		_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	introCmd.Flags().IntVarP(&introWindow, "window", "w", 0, "lines before the speech that count as its introduction (default from config)")
	locateCmd.Flags().IntVarP(&introWindow, "window", "w", 0, "lines before the speech that count as its introduction (default from config)")
	speechCmd.Flags().StringVar(&speechID, "id", "", "identifier for the speech")
	featuresCmd.Flags().IntVarP(&topFeatures, "top", "n", 50, "number of most frequent lemmas to use (-1 for all)")
	featuresCmd.Flags().BoolVar(&normalize, "normalize", true, "divide counts by passage length")
	featuresCmd.Flags().BoolVar(&stopwords, "stopwords", false, "drop Latin function words")
}

func printLines(cmd *cobra.Command, lines domain.LineArray) error {
	if jsonOutput {
		if lines == nil {
			lines = domain.LineArray{}
		}
		return printJSON(cmd.OutOrStdout(), lines)
	}
	for _, l := range lines {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.N, l.Text)
	}
	return nil
}

func speechSummaries(speeches []domain.Speech) []map[string]string {
	out := make([]map[string]string, 0, len(speeches))
	for _, s := range speeches {
		out = append(out, map[string]string{
			"id":   s.ID(),
			"spkr": s.Speaker(),
			"lang": s.Lang(),
			"l_fi": s.FirstLine(),
			"l_la": s.LastLine(),
		})
	}
	return out
}
