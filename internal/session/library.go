package session

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/fsutil"
	"github.com/specialistvlad/vecgraph/internal/registry"
)

// libraryDocument is a file holding only custom node definitions.
type libraryDocument struct {
	Version *int           `hcl:"version,optional"`
	Customs []*customBlock `hcl:"custom_node,block"`
}

// LoadLibrary registers the custom node definitions found in every .hcl
// file under root and returns how many were registered. Definitions may use
// each other across files.
func LoadLibrary(ctx context.Context, root string, reg *registry.Registry) (int, error) {
	logger := ctxlog.FromContext(ctx)
	paths, err := fsutil.FindFilesByExtension(root, ".hcl")
	if err != nil {
		return 0, fmt.Errorf("failed to find library files in %s: %w", root, err)
	}

	parser := hclparse.NewParser()
	var blocks []*customBlock
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return 0, fmt.Errorf("failed to parse library %s: %w", path, diags)
		}
		var lib libraryDocument
		if diags := gohcl.DecodeBody(file.Body, nil, &lib); diags.HasErrors() {
			return 0, fmt.Errorf("failed to decode library %s: %w", path, diags)
		}
		if lib.Version != nil && *lib.Version != Version {
			return 0, fmt.Errorf("%s: %w: %d", path, ErrVersion, *lib.Version)
		}
		blocks = append(blocks, lib.Customs...)
	}

	if err := New(reg).loadDefinitions(ctx, blocks); err != nil {
		return 0, err
	}
	logger.Debug("Loaded custom node library.", "root", root, "files", len(paths), "definitions", len(blocks))
	return len(blocks), nil
}
