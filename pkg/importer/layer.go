package importer

import (
	"context"
	"log/slog"

	"github.com/layerkit/psimport/pkg/errors"
	"github.com/layerkit/psimport/pkg/imagepath"
	"github.com/layerkit/psimport/pkg/jsx"
	"github.com/layerkit/psimport/pkg/photoshop"
)

// LayerImporter places one image into a document as a new named layer.
type LayerImporter struct {
	validator *imagepath.Validator
	linked    bool
}

// NewLayerImporter creates an importer. validator may be nil to skip
// local file checks; linked places files as linked smart objects.
func NewLayerImporter(validator *imagepath.Validator, linked bool) *LayerImporter {
	return &LayerImporter{validator: validator, linked: linked}
}

// Import creates a layer named after path and places the file into it.
// It never returns an error: every failure is reported in the result.
func (li *LayerImporter) Import(ctx context.Context, doc photoshop.Document, path string) ImportResult {
	name := imagepath.LayerName(path)
	log := slog.With("path", path, "layer", name)

	if li.validator != nil {
		if err := li.validator.Validate(path); err != nil {
			log.Error("image_import_failed", "step", "validate", "error", err)
			return failed(path, name, err)
		}
	}

	script, err := jsx.PlaceScript(path, li.linked)
	if err != nil {
		log.Error("image_import_failed", "step", "build_script", "error", err)
		return failed(path, name, errors.Wrap(err, "failed to build place command"))
	}

	layer, err := doc.AddLayer(ctx)
	if err != nil {
		log.Error("image_import_failed", "step", "add_layer", "error", err)
		return failed(path, name, errors.Wrap(err, "failed to create layer"))
	}

	if err := layer.SetName(ctx, name); err != nil {
		log.Error("image_import_failed", "step", "name_layer", "error", err)
		return failed(path, name, errors.Wrap(err, "failed to name layer"))
	}

	if err := doc.Execute(ctx, script); err != nil {
		log.Error("image_import_failed", "step", "place", "error", err)
		return failed(path, name, errors.Wrap(err, "failed to place image"))
	}

	log.Info("image_imported")
	return succeeded(path, name)
}
