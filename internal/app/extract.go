package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
	"github.com/ironsheep/cover-palette-mcp/internal/source"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newExtractCmd() *cobra.Command {
	var region, format string

	cmd := &cobra.Command{
		Use:   "extract <path|url>",
		Short: "Print the theme palette for a cover",
		Long: `Print the dominant, secondary and light colors of a cover and its
background gradient. A cover that cannot be read yields the fallback palette.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ref, err := parseReference(args[0], region)
			if err != nil {
				return err
			}

			sv, err := newServices()
			if err != nil {
				return err
			}
			defer sv.Close()

			report := sv.service.Palette(context.Background(), ref).Report()
			return writeOutput(cmd.OutOrStdout(), format, report, func(w io.Writer) {
				printPalette(w, ref, report)
			})
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Cover region: "+strings.Join(source.RegionNames, ", "))
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	return cmd
}

func newCandidatesCmd() *cobra.Command {
	var region, format string
	var limit int

	cmd := &cobra.Command{
		Use:   "candidates <path|url>",
		Short: "Show the ranked vibrant colors behind a palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			ref, err := parseReference(args[0], region)
			if err != nil {
				return err
			}

			sv, err := newServices()
			if err != nil {
				return err
			}
			defer sv.Close()

			analysis, err := sv.service.Analyze(context.Background(), ref)
			if err != nil {
				return err
			}
			report := analysis.Report(limit)
			return writeOutput(cmd.OutOrStdout(), format, report, func(w io.Writer) {
				printCandidates(w, ref, report)
			})
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Cover region: "+strings.Join(source.RegionNames, ", "))
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum candidates to show (0 for all)")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}

func parseReference(arg, region string) (source.Reference, error) {
	if !source.ValidRegion(region) {
		return source.Reference{}, fmt.Errorf("%w: %s (want one of %s)",
			source.ErrUnknownRegion, region, strings.Join(source.RegionNames, ", "))
	}
	return source.ParseReference(arg, region), nil
}

// writeOutput encodes v as JSON or YAML, or calls text for the text format.
func writeOutput(w io.Writer, format string, v interface{}, text func(io.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

// block renders a patch in the swatch color itself.
func block(s palette.Swatch) string {
	return color.BgRGB(int(s.RGB[0]), int(s.RGB[1]), int(s.RGB[2])).Sprint("      ")
}

func describeSwatch(s palette.Swatch) string {
	return fmt.Sprintf("%s  %s  rgb(%d,%d,%d)  hsb(%.0f,%.2f,%.2f)",
		block(s), s.Hex, s.RGB[0], s.RGB[1], s.RGB[2], s.HSB.H, s.HSB.S, s.HSB.B)
}

func printPalette(w io.Writer, ref source.Reference, p palette.Report) {
	header(w, "Palette: %s", ref)
	printField(w, "dominant", describeSwatch(p.Dominant))
	printField(w, "secondary", describeSwatch(p.Secondary))
	printField(w, "light", describeSwatch(p.Light))

	stops := make([]string, 0, len(p.Gradient))
	for _, stop := range p.Gradient {
		stops = append(stops, fmt.Sprintf("%s@%.0f%%", stop.Swatch.Hex, stop.Opacity*100))
	}
	printField(w, "gradient", strings.Join(stops, "  "))

	if p.Fallback {
		printField(w, "fallback", color.YellowString("yes (no vibrant color found)"))
	} else {
		printField(w, "fallback", color.GreenString("no"))
	}
}

func printCandidates(w io.Writer, ref source.Reference, r palette.AnalysisReport) {
	header(w, "Candidates: %s", ref)
	fmt.Fprintf(w, "  sampled %d  counted %d  buckets %d  candidates %d\n", r.Sampled, r.Counted, r.Buckets, r.Total)
	if len(r.Candidates) == 0 {
		fmt.Fprintln(w, "  "+color.YellowString("no vibrant colors; the fallback palette applies"))
		return
	}
	for i, c := range r.Candidates {
		fmt.Fprintf(w, "  %3d  %s  %d\n", i+1, describeSwatch(c.Swatch), c.Count)
	}
}
