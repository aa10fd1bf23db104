// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/internal/pdfio"
	"github.com/pdiddy/docsight/internal/sections"
	"github.com/pdiddy/docsight/pkg/types"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <pdf>",
	Short: "Extract and display the sections of a single PDF",
	Long: `Sections runs only the extraction stage against one PDF and prints the
detected sections with their heading kind, structural weight, and body
size. Useful for checking how a document's headings are classified
before running a full analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	sectionsCmd.Flags().Bool("json", false, "output sections as JSON")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	path := args[0]

	pages, err := pdfio.NewReader().ExtractPages(path)
	if err != nil {
		return err
	}

	doc := types.Document{ID: filepath.Base(path)}
	for i, text := range pages {
		doc.Pages = append(doc.Pages, types.Page{Number: i + 1, Text: text})
	}

	secs := sections.Extract(doc)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(secs)
	}

	if len(secs) == 0 {
		fmt.Println("No sections detected.")
		return nil
	}

	fmt.Printf("%-4s  %-50s  %-9s  %-6s  %-6s  %s\n",
		"Page", "Title", "Kind", "Weight", "Body", "")
	fmt.Println(strings.Repeat("-", 85))
	for _, sec := range secs {
		title := sec.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Printf("%-4d  %-50s  %-9s  %-6.2f  %-6d\n",
			sec.Page, title, sec.Kind, sec.StructuralWeight, len(sec.Body))
	}
	fmt.Printf("\n%d sections from %d pages\n", len(secs), len(pages))
	return nil
}
