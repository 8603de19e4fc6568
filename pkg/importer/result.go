package importer

import "github.com/layerkit/psimport/pkg/photoshop"

// Outcome is the result of importing one image.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// ImportResult pairs an image with its outcome. It is never modified after
// the importer returns it.
type ImportResult struct {
	Path      string  `json:"path" yaml:"path"`
	LayerName string  `json:"layer_name" yaml:"layer_name"`
	Outcome   Outcome `json:"outcome" yaml:"outcome"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the image was placed.
func (r ImportResult) OK() bool { return r.Outcome == OutcomeSucceeded }

func succeeded(path, layer string) ImportResult {
	return ImportResult{Path: path, LayerName: layer, Outcome: OutcomeSucceeded}
}

func failed(path, layer string, err error) ImportResult {
	return ImportResult{Path: path, LayerName: layer, Outcome: OutcomeFailed, Error: err.Error()}
}

// Report is the aggregate outcome of a batch.
type Report struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	NothingToDo bool                    `json:"nothing_to_do" yaml:"nothing_to_do"`
	Document    *photoshop.DocumentInfo `json:"document,omitempty" yaml:"document,omitempty"`
	Results     []ImportResult          `json:"results" yaml:"results"`
}

// Succeeded returns the paths that were placed, in batch order.
func (r *Report) Succeeded() []string { return r.paths(OutcomeSucceeded) }

// Failed returns the paths that could not be placed, in batch order.
func (r *Report) Failed() []string { return r.paths(OutcomeFailed) }

func (r *Report) paths(o Outcome) []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == o {
			out = append(out, res.Path)
		}
	}
	return out
}
