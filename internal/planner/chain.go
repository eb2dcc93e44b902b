package planner

import "github.com/accessway-travel/service-planner/internal/domain/plan"

// chainSpec describes one access → trunk → egress candidate shape: a surface
// leg to a transfer hub, a long-distance trunk leg, and a surface leg from the
// arrival hub.
type chainSpec struct {
	access plan.Mode
	trunk  plan.Mode
	egress plan.Mode
}

// chainSpecs enumerates every access × trunk × egress combination available
// from the allowed modes, in a deterministic order so ranking ties keep
// first-discovered order. The enumeration is an explicit finite list rather
// than nested control flow inside the composer.
func chainSpecs(modes []plan.Mode) []chainSpec {
	var surface, trunk []plan.Mode
	for _, m := range modes {
		if m.IsSurface() {
			surface = append(surface, m)
		}
		if m.IsTrunk() {
			trunk = append(trunk, m)
		}
	}

	specs := make([]chainSpec, 0, len(surface)*len(trunk)*len(surface))
	for _, a := range surface {
		for _, t := range trunk {
			for _, e := range surface {
				specs = append(specs, chainSpec{access: a, trunk: t, egress: e})
			}
		}
	}
	return specs
}
