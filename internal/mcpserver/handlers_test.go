package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dxtutor/internal/app"
	"github.com/abhisek/dxtutor/internal/config"
	"github.com/abhisek/dxtutor/internal/dataset"
	"github.com/abhisek/dxtutor/internal/store"
)

func newTestHandlers(t *testing.T) (*Handlers, *app.App) {
	t.Helper()
	a, err := app.New(app.Options{
		Config: &config.Config{
			DBPath:           filepath.Join(t.TempDir(), "dxtutor.db"),
			TopK:             3,
			MinJustification: 20,
			LogFormat:        "text",
		},
		WithStore: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return NewHandlers(a), a
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestRetrieveCases(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, err := h.RetrieveCases(context.Background(), call(map[string]any{
		"note": "jaw clicks a lot when opening",
		"k":    2,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var got retrieveResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	require.Len(t, got.Hits, 2)
	assert.Equal(t, "case_002", got.Hits[0].Case.ID)
	assert.Equal(t, 1, got.Hits[0].Rank)
	assert.Greater(t, got.Hits[0].Similarity, 0.0)
}

func TestRetrieveCases_Errors(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, err := h.RetrieveCases(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.RetrieveCases(context.Background(), call(map[string]any{"note": "jaw", "k": 0}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHighlightDiagnosis(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, err := h.HighlightDiagnosis(context.Background(), call(map[string]any{
		"diagnosis_id": dataset.DxMyalgia,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got struct {
		Diagnosis struct {
			ID string `json:"id"`
		} `json:"diagnosis"`
		Ancestors []struct {
			ID string `json:"id"`
		} `json:"ancestors"`
		Features []struct {
			ID string `json:"id"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, dataset.DxMyalgia, got.Diagnosis.ID)
	require.Len(t, got.Ancestors, 2)
	assert.Equal(t, dataset.DxTMD, got.Ancestors[0].ID)
	assert.Equal(t, dataset.DxMusculoskeletal, got.Ancestors[1].ID)
	assert.Len(t, got.Features, 4)

	res, err = h.HighlightDiagnosis(context.Background(), call(map[string]any{"diagnosis_id": "icop_l9_nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAssessAttempt(t *testing.T) {
	h, a := newTestHandlers(t)
	ctx := context.Background()

	res, err := h.AssessAttempt(ctx, call(map[string]any{
		"student_id":    "s1",
		"scenario_id":   "demo_002",
		"diagnosis":     dataset.DxMyalgia,
		"features":      []any{"sx_jaw_pain", "sx_tender_muscle"},
		"justification": "Masticatory muscle pain without joint findings.",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var got struct {
		Record struct {
			StudentID        string  `json:"student_id"`
			DiagnosisCorrect bool    `json:"diagnosis_correct"`
			Recall           float64 `json:"recall"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, "s1", got.Record.StudentID)
	assert.True(t, got.Record.DiagnosisCorrect)
	assert.InDelta(t, 0.5, got.Record.Recall, 1e-9)

	repo, err := a.Attempts()
	require.NoError(t, err)
	logged, err := repo.QueryAttempts(ctx, store.QueryOpts{StudentID: "s1"})
	require.NoError(t, err)
	assert.Len(t, logged, 1)
}

func TestAssessAttempt_InvalidSubmission(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, err := h.AssessAttempt(context.Background(), call(map[string]any{
		"scenario_id": "demo_002",
		"diagnosis":   dataset.DxMyalgia,
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "features")
	assert.Contains(t, text, "justification")
}

func TestAssessAttempt_NoGold(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, err := h.AssessAttempt(context.Background(), call(map[string]any{
		"diagnosis":     dataset.DxMyalgia,
		"features":      []any{"sx_jaw_pain"},
		"justification": "Masticatory muscle pain without joint findings.",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "no gold diagnosis")
}

func TestListScenarios_HidesGold(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, err := h.ListScenarios(context.Background(), call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	var got scenariosResponse
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "demo_001", got.Scenarios[0].ID)
	assert.NotContains(t, text, "gold")
}

func TestRegisterTools(t *testing.T) {
	_, a := newTestHandlers(t)
	h := RegisterTools(mcpserver.NewMCPServer(ServerName, "test"), a)
	require.NotNil(t, h)
	assert.Same(t, a, h.app)
}
