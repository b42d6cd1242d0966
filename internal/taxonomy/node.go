package taxonomy

// Relation is the type of a directed taxonomy edge.
type Relation string

const (
	// RelParentOf links a parent diagnosis to a child diagnosis.
	RelParentOf Relation = "parent_of"
	// RelHasSymptom links a diagnosis to a clinical finding.
	RelHasSymptom Relation = "has_symptom"
	// RelRiskFactor links a diagnosis to a risk factor.
	RelRiskFactor Relation = "risk_factor"
)

// FeatureRelations are the relations that attach features to a diagnosis.
var FeatureRelations = []Relation{RelHasSymptom, RelRiskFactor}

// Valid reports whether r is a known relation.
func (r Relation) Valid() bool {
	switch r {
	case RelParentOf, RelHasSymptom, RelRiskFactor:
		return true
	default:
		return false
	}
}

// DiagnosisNode is a category in the diagnosis hierarchy.
type DiagnosisNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Level int    `json:"level,omitempty"` // 1 for roots; 0 in input means derive from depth
}

// FeatureNode is a clinical finding, symptom or risk factor.
type FeatureNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Edge is a directed relation between two nodes.
type Edge struct {
	ID       string   `json:"id"`
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Relation Relation `json:"relation"`
}

// Highlight is the set of graph elements that explain one diagnosis:
// the diagnosis itself, its ancestor chain and its direct features.
type Highlight struct {
	Diagnosis *DiagnosisNode  `json:"diagnosis,omitempty"`
	Ancestors []DiagnosisNode `json:"ancestors"`
	Features  []FeatureNode   `json:"features"`
	NodeIDs   []string        `json:"node_ids"`
	EdgeIDs   []string        `json:"edge_ids"`
}

// Empty reports whether the highlight references no diagnosis.
func (h Highlight) Empty() bool { return h.Diagnosis == nil }
