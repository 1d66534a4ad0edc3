package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vidsub/internal/pipeline"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var dropCredits bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Strip inline timing annotations from subtitles in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			opts := pipeline.CleanOptions{
				DropCreditCues: dropCredits || cfg.Subtitles.DropCreditCues,
				DryRun:         dryRun,
			}
			outcomes, err := pipeline.CleanSubtitles(cfg.Paths.DataDir, opts, logger)
			if err != nil {
				return err
			}
			verb := "cleaned"
			if dryRun {
				verb = "would be cleaned"
			}
			return reportOutcomes(cmd.OutOrStdout(), outcomes, verb, "subtitle")
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing files")
	cmd.Flags().BoolVar(&dropCredits, "drop-credits", false, "Also remove subtitle credit and advertisement cues")
	return cmd
}

func newGenSRTCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "gensrt",
		Short: "Generate subtitles from transcripts in the data directory",
		Long: "Split every <id>.raw.txt body on sentence punctuation and newlines and " +
			"write <id>.srt with fixed-length cues.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			outcomes, err := pipeline.ConvertTranscripts(cfg.Paths.DataDir, cfg.SegmentSlot(), overwrite, logger)
			if err != nil {
				return err
			}
			return reportOutcomes(cmd.OutOrStdout(), outcomes, "generated", "transcript")
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing subtitle files")
	return cmd
}

func reportOutcomes(out io.Writer, outcomes []pipeline.FileOutcome, verb, noun string) error {
	if len(outcomes) == 0 {
		fmt.Fprintf(out, "No %s files found\n", noun)
		return nil
	}
	for _, o := range outcomes {
		fmt.Fprintln(out, o.String())
	}
	changed, failed := pipeline.CountChanged(outcomes)
	fmt.Fprintf(out, "%d of %d file(s) %s", changed, len(outcomes), verb)
	if failed > 0 {
		fmt.Fprintf(out, ", %d failed", failed)
	}
	fmt.Fprintln(out)
	return nil
}
