package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/node"
)

// ValidateRegistry builds one instance of every registered type and checks
// it against its registration: the node reports the registered name, defines
// at least one property, every default satisfies its own type, and Clone
// preserves the type.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Types() {
		n := r.types[name].New()
		if got := n.Info().Type; got != name {
			errs = append(errs, fmt.Sprintf("type '%s': node reports type '%s'", name, got))
		}
		if n.PropDefs().Len() == 0 {
			errs = append(errs, fmt.Sprintf("type '%s': no properties defined", name))
		}
		for _, e := range n.PropDefs().Entries() {
			if e.Def.Default == nil {
				continue
			}
			if err := e.Def.Type.Check(*e.Def.Default); err != nil {
				errs = append(errs, fmt.Sprintf("type '%s': default of '%s': %v", name, e.Key, err))
			}
		}
		if got := n.Clone().Info().Type; got != name {
			errs = append(errs, fmt.Sprintf("type '%s': clone reports type '%s'", name, got))
		}
		if _, ok := node.As[node.Selectable](n); ok {
			logger.Debug("Node type is selectable.", "type", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "types", len(r.types), "definitions", len(r.definitions))
	return nil
}
