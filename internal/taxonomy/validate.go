package taxonomy

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on the taxonomy input.
// Returns a combined error describing all problems found, or nil if valid.
func validate(diagnoses []DiagnosisNode, features []FeatureNode, edges []Edge) error {
	var errs []string

	if len(diagnoses) == 0 {
		errs = append(errs, "no diagnosis nodes")
	}

	kind := make(map[string]string, len(diagnoses)+len(features))
	for _, d := range diagnoses {
		if d.ID == "" {
			errs = append(errs, fmt.Sprintf("diagnosis with label %q has empty ID", d.Label))
			continue
		}
		if _, dup := kind[d.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate node ID: %q", d.ID))
		}
		if d.Level < 0 {
			errs = append(errs, fmt.Sprintf("diagnosis %q: level must be >= 0, got %d", d.ID, d.Level))
		}
		kind[d.ID] = "diagnosis"
	}
	for _, f := range features {
		if f.ID == "" {
			errs = append(errs, fmt.Sprintf("feature with label %q has empty ID", f.Label))
			continue
		}
		if _, dup := kind[f.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate node ID: %q", f.ID))
		}
		kind[f.ID] = "feature"
	}

	edgeIDs := make(map[string]bool, len(edges))
	parentOf := make(map[string]string)
	for _, e := range edges {
		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("edge %s -> %s has empty ID", e.Source, e.Target))
		} else if edgeIDs[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate edge ID: %q", e.ID))
		}
		edgeIDs[e.ID] = true

		if !e.Relation.Valid() {
			errs = append(errs, fmt.Sprintf("edge %q has unknown relation %q", e.ID, e.Relation))
			continue
		}
		src, srcOK := kind[e.Source]
		dst, dstOK := kind[e.Target]
		if !srcOK {
			errs = append(errs, fmt.Sprintf("edge %q references nonexistent source %q", e.ID, e.Source))
		}
		if !dstOK {
			errs = append(errs, fmt.Sprintf("edge %q references nonexistent target %q", e.ID, e.Target))
		}
		if !srcOK || !dstOK {
			continue
		}

		switch e.Relation {
		case RelParentOf:
			if src != "diagnosis" || dst != "diagnosis" {
				errs = append(errs, fmt.Sprintf("edge %q: parent_of must join two diagnoses", e.ID))
				continue
			}
			if e.Source == e.Target {
				errs = append(errs, fmt.Sprintf("edge %q: diagnosis %q is its own parent", e.ID, e.Source))
				continue
			}
			if prev, ok := parentOf[e.Target]; ok {
				errs = append(errs, fmt.Sprintf("diagnosis %q has multiple parents: %q and %q", e.Target, prev, e.Source))
				continue
			}
			parentOf[e.Target] = e.Source
		default:
			if src != "diagnosis" || dst != "feature" {
				errs = append(errs, fmt.Sprintf("edge %q: %s must go from a diagnosis to a feature", e.ID, e.Relation))
			}
		}
	}

	// Walk each parent chain; revisiting a node means a cycle.
	cyclic := make(map[string]bool)
	for _, d := range diagnoses {
		seen := map[string]bool{d.ID: true}
		for cur, ok := parentOf[d.ID]; ok; cur, ok = parentOf[cur] {
			if seen[cur] {
				cyclic[d.ID] = true
				break
			}
			seen[cur] = true
		}
	}
	if len(cyclic) > 0 {
		var ids []string
		for _, d := range diagnoses {
			if cyclic[d.ID] {
				ids = append(ids, d.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving diagnoses: %s", strings.Join(ids, ", ")))
	}

	if len(diagnoses) > 0 && len(parentOf) >= len(diagnoses) {
		errs = append(errs, "no root diagnosis found (at least one diagnosis must have no parent)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("taxonomy validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
