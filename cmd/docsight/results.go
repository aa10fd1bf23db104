// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List and search stored analysis runs",
	Long: `Results queries the local SQLite results database populated by
"analyze --store". Use list to see past runs and search for full-text
search over stored subsection text.`,
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analysis runs, newest first",
	RunE:  runResultsList,
}

var resultsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over stored subsection text",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsSearch,
}

func init() {
	resultsSearchCmd.Flags().Bool("json", false, "output matches as JSON")
	resultsSearchCmd.Flags().Int("limit", 0, "maximum number of matches")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsSearchCmd)
	rootCmd.AddCommand(resultsCmd)
}

func runResultsList(cmd *cobra.Command, args []string) error {
	st, err := store.Open(pipelineConfig().Store)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(context.Background())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-4s  %-20s  %-20s  %-4s  %-5s  %s\n",
		"ID", "Timestamp", "Persona", "Docs", "Secs", "Task")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range runs {
		task := r.Task
		if len(task) > 35 {
			task = task[:32] + "..."
		}
		persona := r.Persona
		if len(persona) > 20 {
			persona = persona[:17] + "..."
		}
		fmt.Printf("%-4d  %-20s  %-20s  %-4d  %-5d  %s\n",
			r.ID, r.Timestamp, persona, len(r.Documents), r.SectionsExtracted, task)
	}
	return nil
}

func runResultsSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := store.Open(pipelineConfig().Store)
	if err != nil {
		return err
	}
	defer st.Close()

	hits, err := st.SearchChunks(context.Background(), args[0], limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	for i, h := range hits {
		text := h.Text
		if len(text) > 100 {
			text = text[:97] + "..."
		}
		fmt.Printf("%d. [run %d] %s — %s (page %d, score %.4f)\n   %s\n",
			i+1, h.RunID, h.Document, h.SectionTitle, h.Page, h.Score, text)
	}
	fmt.Printf("\n%d matches\n", len(hits))
	return nil
}
