package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const attemptsTableName = "assessment_attempts"

var (
	// AttemptsColumns holds the columns for the "assessment_attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "attempt_id", Type: field.TypeString, Unique: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "case_id", Type: field.TypeString},
		{Name: "student_diagnosis", Type: field.TypeString},
		{Name: "gold_diagnosis", Type: field.TypeString},
		{Name: "gold_source", Type: field.TypeString, Default: ""},
		{Name: "diagnosis_correct", Type: field.TypeBool},
		{Name: "feature_precision", Type: field.TypeFloat64},
		{Name: "feature_recall", Type: field.TypeFloat64},
		{Name: "feature_f1", Type: field.TypeFloat64},
		{Name: "selected_features", Type: field.TypeString, Size: 2147483647},
		{Name: "missing_features", Type: field.TypeString, Size: 2147483647},
		{Name: "extra_features", Type: field.TypeString, Size: 2147483647},
		{Name: "confusable_dx", Type: field.TypeString, Default: ""},
		{Name: "justification", Type: field.TypeString, Size: 2147483647},
	}
	// AttemptsTable holds the schema information for the "assessment_attempts" table.
	AttemptsTable = &schema.Table{
		Name:       attemptsTableName,
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "assessmentattempt_student_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[4]},
			},
			{
				Name:    "assessmentattempt_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[2]},
			},
		},
	}
	// tables holds all the tables in the schema.
	tables = []*schema.Table{
		AttemptsTable,
	}
)
