package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/bkga-dev/bkga/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "bkga"
	ToolVersion = "0.1.0"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one issue category.
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single annotation
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
	Fixes     []Fix      `json:"fixes,omitempty"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the annotated text
type Snippet struct {
	Text string `json:"text"`
}

// Fix proposes replacing the annotated region with the suggestion.
type Fix struct {
	Description     Message          `json:"description"`
	ArtifactChanges []ArtifactChange `json:"artifactChanges"`
}

// ArtifactChange groups the replacements for one file.
type ArtifactChange struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Replacements     []Replacement    `json:"replacements"`
}

// Replacement swaps DeletedRegion for InsertedContent.
type Replacement struct {
	DeletedRegion   Region          `json:"deletedRegion"`
	InsertedContent InsertedContent `json:"insertedContent"`
}

// InsertedContent is the replacement text.
type InsertedContent struct {
	Text string `json:"text"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules:   []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddCategory registers a rule for an issue category. Repeated categories
// are ignored.
func (r *Report) AddCategory(category string) {
	driver := &r.Runs[0].Tool.Driver
	for _, existing := range driver.Rules {
		if existing.ID == category {
			return
		}
	}
	info := types.CategoryInfo(category)
	driver.Rules = append(driver.Rules, Rule{
		ID:   category,
		Name: string(info.Kind),
		ShortDescription: ShortDescription{
			Text: info.Name,
		},
	})
}

// AddResult adds an annotation found in filePath. The category rule is
// registered on first use.
func (r *Report) AddResult(a *types.Annotation, filePath string) {
	category := a.Issue.Category
	if category == "" {
		category = types.CategoryUnknown
	}
	r.AddCategory(category)

	uri := formatFileURI(filePath)

	region := Region{
		StartLine:   a.Location.Source.Start.Line,
		StartColumn: a.Location.Source.Start.Column,
		EndLine:     a.Location.Source.End.Line,
		EndColumn:   a.Location.Source.End.Column,
	}
	if a.Snippet != "" {
		region.Snippet = &Snippet{Text: a.Snippet}
	}

	result := Result{
		RuleID: category,
		Level:  level(a.Issue.Severity),
		Message: Message{
			Text: a.Issue.Message,
		},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: uri},
					Region:           region,
				},
			},
		},
	}

	if a.Issue.HasSuggestion() {
		deleted := region
		deleted.Snippet = nil
		result.Fixes = []Fix{
			{
				Description: Message{Text: a.Issue.SuggestionText()},
				ArtifactChanges: []ArtifactChange{
					{
						ArtifactLocation: ArtifactLocation{URI: uri},
						Replacements: []Replacement{
							{
								DeletedRegion:   deleted,
								InsertedContent: InsertedContent{Text: a.Issue.SuggestionText()},
							},
						},
					},
				},
			},
		}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func level(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
