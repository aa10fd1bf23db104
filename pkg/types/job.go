// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// JobDocument names one input PDF in the job descriptor.
type JobDocument struct {
	// Filename is the PDF filename, resolved relative to the job file's
	// PDFs/ directory.
	Filename string `json:"filename" yaml:"filename"`

	// Title is an optional human-readable document title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// JobPersona identifies the user archetype driving relevance scoring.
type JobPersona struct {
	// Role is the persona label, e.g. "Travel Planner". Unknown roles
	// fall back to a generic keyword set.
	Role string `json:"role" yaml:"role"`
}

// JobTask is the free-text job-to-be-done description.
type JobTask struct {
	Task string `json:"task" yaml:"task"`
}

// Job is the input JSON job descriptor: which documents to analyze and
// for whom.
type Job struct {
	Documents []JobDocument `json:"documents" yaml:"documents"`
	Persona   JobPersona    `json:"persona" yaml:"persona"`
	JobToBeDo JobTask       `json:"job_to_be_done" yaml:"job_to_be_done"`
}

// Validate checks the required job fields. A job with no documents, no
// persona role, or no task cannot produce a meaningful ranking.
func (j Job) Validate() error {
	if len(j.Documents) == 0 {
		return fmt.Errorf("job has no documents")
	}
	for i, d := range j.Documents {
		if d.Filename == "" {
			return fmt.Errorf("document %d has no filename", i)
		}
	}
	if j.Persona.Role == "" {
		return fmt.Errorf("job has no persona role")
	}
	if j.JobToBeDo.Task == "" {
		return fmt.Errorf("job has no job_to_be_done task")
	}
	return nil
}

// Metadata summarizes one analysis run for the output document.
type Metadata struct {
	// InputDocuments lists the job's document filenames in input order,
	// including any that failed extraction.
	InputDocuments []string `json:"input_documents" yaml:"input_documents"`

	// Persona is the job's persona role verbatim.
	Persona string `json:"persona" yaml:"persona"`

	// JobToBeDone is the job's task text verbatim.
	JobToBeDone string `json:"job_to_be_done" yaml:"job_to_be_done"`

	// ProcessingTimestamp is the run time in RFC 3339.
	ProcessingTimestamp string `json:"processing_timestamp" yaml:"processing_timestamp"`

	// SectionsExtracted counts all sections found across all documents,
	// before ranking and truncation.
	SectionsExtracted int `json:"sections_extracted" yaml:"sections_extracted"`

	// SubsectionsGenerated counts all scored chunks before truncation.
	SubsectionsGenerated int `json:"subsections_generated" yaml:"subsections_generated"`
}

// SectionEntry is one ranked section in the output document.
type SectionEntry struct {
	Document       string  `json:"document" yaml:"document"`
	SectionTitle   string  `json:"section_title" yaml:"section_title"`
	PageNumber     int     `json:"page_number" yaml:"page_number"`
	ImportanceRank int     `json:"importance_rank" yaml:"importance_rank"`
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// ChunkEntry is one ranked subsection in the output document. RefinedText
// is capped for readability; the parent section always appears in the
// output's section list.
type ChunkEntry struct {
	Document       string  `json:"document" yaml:"document"`
	SectionTitle   string  `json:"section_title" yaml:"section_title"`
	RefinedText    string  `json:"refined_text" yaml:"refined_text"`
	PageNumber     int     `json:"page_number" yaml:"page_number"`
	Rank           int     `json:"rank" yaml:"rank"`
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Result is the output JSON document for one analysis run.
type Result struct {
	Metadata           Metadata       `json:"metadata" yaml:"metadata"`
	ExtractedSections  []SectionEntry `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []ChunkEntry   `json:"subsection_analysis" yaml:"subsection_analysis"`
}
