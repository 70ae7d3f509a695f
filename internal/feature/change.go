package feature

import (
	"strings"

	"github.com/coreyang/yangcore/diag"
	"github.com/coreyang/yangcore/internal/telemetry"
)

// Change implements the §4.B enable/disable propagation algorithm. name
// may be a single feature name or "*" for every feature in features. On
// failure, every feature's Enabled flag is restored to its pre-call value.
func Change(features []*Feature, name string, value bool) error {
	all := name == "*"
	if !all {
		var target *Feature
		for _, f := range features {
			if f.Name == name {
				target = f
				break
			}
		}
		if target == nil {
			return diag.New(diag.KindNotFound, "feature-not-found", "", "feature %q not found", name)
		}
		if target.Enabled == value {
			return nil
		}
		if value {
			if !target.Evaluate() {
				return diag.New(diag.KindDenied, "iff-conflict", "",
					"feature %q cannot be enabled: an if-feature condition evaluates false", name)
			}
		}
		target.Enabled = value
		telemetry.FeatureEvent(telemetry.Logger, target.Name, value, "changed")
		cascade(features, []*Feature{target})
		return nil
	}

	snapshot := snapshotAll(features)
	var changed []*Feature
	for {
		progressed := false
		for _, f := range features {
			if f.Enabled == value {
				continue
			}
			if value && !f.Evaluate() {
				continue
			}
			f.Enabled = value
			telemetry.FeatureEvent(telemetry.Logger, f.Name, value, "changed")
			changed = append(changed, f)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	if value {
		var stillDenied []string
		for _, f := range features {
			if !f.Enabled {
				stillDenied = append(stillDenied, f.Name)
			}
		}
		if len(stillDenied) > 0 {
			restore(features, snapshot)
			return diag.New(diag.KindDenied, "iff-conflict", "",
				"features cannot be enabled due to if-feature conflicts: %s", joinNames(stillDenied))
		}
	}

	cascade(features, changed)
	return nil
}

// cascade walks each changed feature's dependents, disabling any that is
// currently enabled but whose if-feature now evaluates false. No dependent
// is ever auto-enabled by this pass.
func cascade(features []*Feature, changed []*Feature) {
	work := append([]*Feature(nil), changed...)
	for len(work) > 0 {
		f := work[0]
		work = work[1:]
		for _, dep := range f.Dependents {
			if !dep.Enabled {
				continue
			}
			if !dep.Evaluate() {
				dep.Enabled = false
				telemetry.FeatureEvent(telemetry.Logger, dep.Name, false, "cascade")
				work = append(work, dep)
			}
		}
	}
}

func snapshotAll(features []*Feature) map[*Feature]bool {
	snap := make(map[*Feature]bool, len(features))
	for _, f := range features {
		snap[f] = f.Enabled
	}
	return snap
}

func restore(features []*Feature, snapshot map[*Feature]bool) {
	for _, f := range features {
		f.Enabled = snapshot[f]
	}
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
