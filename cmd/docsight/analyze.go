// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/internal/embed"
	"github.com/pdiddy/docsight/internal/pdfio"
	"github.com/pdiddy/docsight/internal/persona"
	"github.com/pdiddy/docsight/internal/pipeline"
	"github.com/pdiddy/docsight/internal/store"
	"github.com/pdiddy/docsight/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input.json> <output.json>",
	Short: "Run the analysis pipeline on a job descriptor",
	Long: `Analyze reads a JSON job descriptor (documents, persona, job-to-be-done),
extracts sections from the listed PDFs, ranks them for the persona and
task, chunks the top sections, and writes the ranked result as JSON.

PDFs resolve relative to the job file: <job dir>/PDFs/<filename>, with a
fallback to <job dir>/<filename>. Unreadable pages and documents are
skipped with a warning; the run fails only when no document yields any
content.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("store", false, "save the result to the results database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	job, err := pipeline.LoadJob(inputPath)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()

	lex, err := persona.Load(cfg.Persona.LexiconFile)
	if err != nil {
		return err
	}

	embedder, err := embed.New(cmd.Context(), cfg.Embedding)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "embedding backend: %s\n", embedder.Name())

	result, err := pipeline.Run(context.Background(), job, filepath.Dir(inputPath), pipeline.Options{
		Extractor: pdfio.NewReader(),
		Embedder:  embedder,
		Lexicon:   lex,
	}, os.Stderr)
	if err != nil {
		return err
	}

	if err := pipeline.WriteResult(outputPath, result); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "output written to %s\n", outputPath)

	if save, _ := cmd.Flags().GetBool("store"); save {
		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.SaveResult(cmd.Context(), result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved as run %d\n", runID)
	}

	printSummary(os.Stdout, result)
	return nil
}

// printSummary writes the human-readable run summary.
func printSummary(w io.Writer, result *types.Result) {
	fmt.Fprintf(w, "documents analyzed:    %d\n", len(result.Metadata.InputDocuments))
	fmt.Fprintf(w, "sections extracted:    %d\n", result.Metadata.SectionsExtracted)
	fmt.Fprintf(w, "subsections generated: %d\n", result.Metadata.SubsectionsGenerated)
	fmt.Fprintf(w, "persona:               %s\n", result.Metadata.Persona)
	fmt.Fprintf(w, "task:                  %s\n", result.Metadata.JobToBeDone)

	if len(result.ExtractedSections) == 0 {
		return
	}
	fmt.Fprintln(w, "\ntop sections:")
	for i, sec := range result.ExtractedSections {
		if i >= 3 {
			break
		}
		fmt.Fprintf(w, "  %d. %s (%s, page %d, score %.4f)\n",
			sec.ImportanceRank, sec.SectionTitle, sec.Document, sec.PageNumber, sec.RelevanceScore)
	}
}
