package app

import (
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/specialistvlad/vecgraph/modules/animate"
	"github.com/specialistvlad/vecgraph/modules/fill"
	"github.com/specialistvlad/vecgraph/modules/grid"
	"github.com/specialistvlad/vecgraph/modules/iterate"
	"github.com/specialistvlad/vecgraph/modules/numbers"
	"github.com/specialistvlad/vecgraph/modules/shapes"
	"github.com/specialistvlad/vecgraph/modules/warp"
)

// coreModules is the definitive list of all node modules that are compiled
// into the vecgraph binary.
var coreModules = []registry.Module{
	&shapes.Module{},
	&fill.Module{},
	&grid.Module{},
	&warp.Module{},
	&numbers.Module{},
	&animate.Module{},
	&iterate.Module{},
}
