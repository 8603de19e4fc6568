package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/layerkit/psimport/pkg/importer"
	"github.com/layerkit/psimport/pkg/ledger"
	"github.com/layerkit/psimport/pkg/photoshop"
)

// reportView is the serialized form of a run report.
type reportView struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	NothingToDo bool                    `json:"nothing_to_do" yaml:"nothing_to_do"`
	Document    *photoshop.DocumentInfo `json:"document,omitempty" yaml:"document,omitempty"`
	Summary     ledger.Summary          `json:"summary" yaml:"summary"`
	Results     []importer.ImportResult `json:"results" yaml:"results"`
}

func checkFormat(format string) error {
	switch format {
	case "text", "yaml", "json":
		return nil
	default:
		return fmt.Errorf("unknown report format %q (want text, yaml or json)", format)
	}
}

func writeReport(w io.Writer, format string, report *importer.Report, summary ledger.Summary) error {
	view := reportView{
		RunID:       report.RunID,
		NothingToDo: report.NothingToDo,
		Document:    report.Document,
		Summary:     summary,
		Results:     report.Results,
	}
	if view.Results == nil {
		view.Results = []importer.ImportResult{}
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		return writeText(w, view)
	}
}

func writeText(w io.Writer, v reportView) error {
	if v.NothingToDo {
		_, err := fmt.Fprintln(w, "No images to import")
		return err
	}

	if v.Document != nil {
		fmt.Fprintf(w, "Document: %s (%gx%g @ %g dpi)\n", v.Document.Name, v.Document.Width, v.Document.Height, v.Document.Resolution)
	}
	for _, r := range v.Results {
		if r.OK() {
			fmt.Fprintf(w, "✅ %s\n", r.Path)
		} else {
			fmt.Fprintf(w, "❌ %s: %s\n", r.Path, r.Error)
		}
	}
	_, err := fmt.Fprintf(w, "%d imported, %d failed\n", v.Summary.Succeeded, v.Summary.Failed)
	return err
}
