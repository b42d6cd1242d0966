package dataset

import (
	"github.com/abhisek/dxtutor/internal/caselib"
	"github.com/abhisek/dxtutor/internal/scoring"
	"github.com/abhisek/dxtutor/internal/taxonomy"
)

// Version of the built-in data.
const seedVersion = "v1.0.0"

// Diagnosis ids of the built-in ICOP subset.
const (
	DxMusculoskeletal  = "icop_l1_msk"
	DxTMD              = "icop_l2_tmd"
	DxMyalgia          = "icop_l3_myalgia"
	DxArthralgia       = "icop_l3_arthralgia"
	DxDiscDisplacement = "icop_l3_disc"
)

var seedDiagnoses = []taxonomy.DiagnosisNode{
	{ID: DxMusculoskeletal, Label: "ICOP L1: Musculoskeletal orofacial pain", Level: 1},
	{ID: DxTMD, Label: "ICOP L2: Temporomandibular disorders (TMD)", Level: 2},
	{ID: DxMyalgia, Label: "ICOP L3: Myalgia", Level: 3},
	{ID: DxArthralgia, Label: "ICOP L3: Arthralgia", Level: 3},
	{ID: DxDiscDisplacement, Label: "ICOP L3: Disc displacement (w/ reduction)", Level: 3},
}

var seedFeatures = []taxonomy.FeatureNode{
	{ID: "sx_jaw_pain", Label: "Jaw / preauricular pain"},
	{ID: "sx_chewing_worse", Label: "Worse with chewing"},
	{ID: "sx_clicking", Label: "Clicking / joint noise"},
	{ID: "sx_limited_opening", Label: "Limited opening"},
	{ID: "sx_morning_stiffness", Label: "Morning stiffness"},
	{ID: "sx_tender_muscle", Label: "Muscle tenderness"},
	{ID: "sx_joint_tender", Label: "TMJ tenderness"},
	{ID: "sx_deviation", Label: "Deviation/deflection on opening"},
	{ID: "sx_locking", Label: "Locking / difficulty closing"},
	{ID: "sx_trauma", Label: "History of trauma"},
	{ID: "sx_preauricular_joint_pain", Label: "Preauricular (joint-localized) pain"},
}

var seedEdges = []taxonomy.Edge{
	{ID: "e_l1_l2", Source: DxMusculoskeletal, Target: DxTMD, Relation: taxonomy.RelParentOf},
	{ID: "e_l2_m", Source: DxTMD, Target: DxMyalgia, Relation: taxonomy.RelParentOf},
	{ID: "e_l2_a", Source: DxTMD, Target: DxArthralgia, Relation: taxonomy.RelParentOf},
	{ID: "e_l2_d", Source: DxTMD, Target: DxDiscDisplacement, Relation: taxonomy.RelParentOf},

	{ID: "e_myalgia_sx1", Source: DxMyalgia, Target: "sx_jaw_pain", Relation: taxonomy.RelHasSymptom},
	{ID: "e_myalgia_sx2", Source: DxMyalgia, Target: "sx_chewing_worse", Relation: taxonomy.RelHasSymptom},
	{ID: "e_myalgia_sx3", Source: DxMyalgia, Target: "sx_morning_stiffness", Relation: taxonomy.RelHasSymptom},
	{ID: "e_myalgia_sx4", Source: DxMyalgia, Target: "sx_tender_muscle", Relation: taxonomy.RelHasSymptom},

	{ID: "e_arth_sx1", Source: DxArthralgia, Target: "sx_jaw_pain", Relation: taxonomy.RelHasSymptom},
	{ID: "e_arth_sx2", Source: DxArthralgia, Target: "sx_joint_tender", Relation: taxonomy.RelHasSymptom},
	{ID: "e_arth_sx3", Source: DxArthralgia, Target: "sx_chewing_worse", Relation: taxonomy.RelHasSymptom},
	{ID: "e_arth_sx4", Source: DxArthralgia, Target: "sx_preauricular_joint_pain", Relation: taxonomy.RelHasSymptom},

	{ID: "e_disc_sx1", Source: DxDiscDisplacement, Target: "sx_clicking", Relation: taxonomy.RelHasSymptom},
	{ID: "e_disc_sx2", Source: DxDiscDisplacement, Target: "sx_limited_opening", Relation: taxonomy.RelHasSymptom},
	{ID: "e_disc_sx3", Source: DxDiscDisplacement, Target: "sx_jaw_pain", Relation: taxonomy.RelHasSymptom},
	{ID: "e_disc_sx4", Source: DxDiscDisplacement, Target: "sx_deviation", Relation: taxonomy.RelHasSymptom},
	{ID: "e_disc_sx5", Source: DxDiscDisplacement, Target: "sx_locking", Relation: taxonomy.RelHasSymptom},
	{ID: "e_disc_sx6", Source: DxDiscDisplacement, Target: "sx_trauma", Relation: taxonomy.RelHasSymptom},
}

// Synthetic reference cases; DiagnosisID drives highlighting on retrieval.
var seedCases = []caselib.Case{
	{
		ID:          "case_001",
		Title:       "Case 001 (Myalgia-like)",
		DiagnosisID: DxMyalgia,
		Text:        "Unilateral jaw pain. Worse with chewing. Morning stiffness. Muscle tenderness. No strong joint noise.",
	},
	{
		ID:          "case_002",
		Title:       "Case 002 (Disc displacement-like)",
		DiagnosisID: DxDiscDisplacement,
		Text:        "Clicking in TMJ with opening and chewing. Intermittent limitation of opening. Joint noise prominent.",
	},
	{
		ID:          "case_003",
		Title:       "Case 003 (Arthralgia-like)",
		DiagnosisID: DxArthralgia,
		Text:        "Preauricular pain with chewing and palpation. TMJ tenderness. Pain localized to the joint.",
	},
	{
		ID:          "case_004",
		Title:       "Case 004 (Mixed TMD features)",
		DiagnosisID: DxDiscDisplacement,
		Text:        "Joint noise plus limited opening, pain near TMJ, worse with function. Clicking is frequent.",
	},
	{
		ID:          "case_005",
		Title:       "Case 005 (Popping + deflection + trauma)",
		DiagnosisID: DxDiscDisplacement,
		Text: "Bilateral TMJ concerns since 2020 with worsening. Jaw and ear popping predominantly right side. " +
			"History of trauma to side of head. Significant deflection to the right on opening. " +
			"Pain on right lateral capsule and masseter.",
	},
	{
		ID:          "case_006",
		Title:       "Case 006 (Follow-up: splint + Botox, partial improvement)",
		DiagnosisID: DxMyalgia,
		Text: "Follow-up visit for stabilization splint adjustment. Wears splint most nights; feels limited benefit. " +
			"Botox reduced migraines. Overall improvement about 10%. Voluntary opening normal. " +
			"Splint adjusted for balance and comfort.",
	},
	{
		ID:          "case_007",
		Title:       "Case 007 (Clicking + episodic locking / difficulty closing)",
		DiagnosisID: DxArthralgia,
		Text: "Preauricular stabbing pain infrequent with wide opening/yawning. Feels jaw dislocates; " +
			"once or twice had difficulty closing after opening wide. Clicking present. Deviation to the left. " +
			"Mild lateral capsule tenderness and multiple muscle tender points.",
	},
}

var seedScenarios = []caselib.Scenario{
	{
		ID:              "demo_001",
		Title:           "Case 1: popping + deflection + trauma history",
		GoldDiagnosisID: DxDiscDisplacement,
		Note: `Chief Complaint: Bone growth in the mandible; ongoing TMJ concerns.

History: Jaw joint pain since early 2020; worsening over years. Jaw and ear popping predominantly on the right side. Trauma to side of head ~1 year before onset.

Exam: Significant deflection to the right on opening. Pain on right lateral capsule and masseter.`,
	},
	{
		ID:              "demo_002",
		Title:           "Case 2: splint follow-up + Botox (improving)",
		GoldDiagnosisID: DxMyalgia,
		Note: `Follow-up: Third splint adjustment.

Symptoms: Wears stabilization splint most nights; feels limited benefit. Botox through neurologist (4 rounds) reduced migraines. Overall improvement ~10%.

Exam: Voluntary opening normal. Splint adjusted for balance and comfort.`,
	},
	{
		ID:              "demo_003",
		Title:           "Case 3: clicking + episodic locking/difficulty closing",
		GoldDiagnosisID: DxArthralgia,
		Note: `Chief complaint: Clicking/popping and jaw pain.

History: Preauricular severe stabbing pain infrequent with wide opening/yawning (1–2 times/month). Feels jaw dislocates; once or twice had difficulty closing after opening wide.

Exam: Clicking present. Deviation on opening. Mild lateral capsule tenderness; multiple masticatory muscle tender points.`,
	},
}

// Curated look-alikes used when feature overlap gives no signal.
var seedConfusables = scoring.Confusables{
	DxMyalgia:          DxArthralgia,
	DxArthralgia:       DxMyalgia,
	DxDiscDisplacement: DxArthralgia,
}
