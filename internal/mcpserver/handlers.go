package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/dxtutor/internal/app"
	"github.com/abhisek/dxtutor/internal/assessment"
	"github.com/abhisek/dxtutor/internal/caselib"
	"github.com/abhisek/dxtutor/internal/retrieval"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	app *app.App
}

// NewHandlers creates tool handlers over a.
func NewHandlers(a *app.App) *Handlers {
	return &Handlers{app: a}
}

type retrieveResponse struct {
	Note string          `json:"note"`
	Hits []retrieval.Hit `json:"hits"`
}

// RetrieveCases handles the retrieve_cases tool.
func (h *Handlers) RetrieveCases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, err := request.RequireString("note")
	if err != nil {
		return mcp.NewToolResultError("note argument is required and must be a string"), nil
	}
	k := request.GetInt("k", h.app.Config.TopK)
	if k < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("k must be at least 1, got %d", k)), nil
	}

	hits := h.app.Retriever.Retrieve(note, k)
	return jsonResult(retrieveResponse{Note: note, Hits: hits})
}

// HighlightDiagnosis handles the highlight_diagnosis tool. Unknown ids are
// an error for the caller even though the graph answers them with an empty
// highlight.
func (h *Handlers) HighlightDiagnosis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("diagnosis_id")
	if err != nil {
		return mcp.NewToolResultError("diagnosis_id argument is required and must be a string"), nil
	}
	hl := h.app.Dataset.Graph.Highlight(id)
	if hl.Empty() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown diagnosis %q", id)), nil
	}
	return jsonResult(hl)
}

// AssessAttempt handles the assess_attempt tool.
func (h *Handlers) AssessAttempt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sub := assessment.Submission{
		StudentID:     request.GetString("student_id", ""),
		ScenarioID:    request.GetString("scenario_id", ""),
		Note:          request.GetString("note", ""),
		Diagnosis:     request.GetString("diagnosis", ""),
		Features:      request.GetStringSlice("features", nil),
		Justification: request.GetString("justification", ""),
	}

	fb, err := h.app.Assessor.Assess(ctx, sub)
	if err != nil {
		if problems := assessment.ValidationErrors(err); len(problems) > 0 {
			msgs := make([]string, len(problems))
			for i, p := range problems {
				msgs[i] = p.Error()
			}
			return mcp.NewToolResultError("invalid submission: " + strings.Join(msgs, "; ")), nil
		}
		if errors.Is(err, assessment.ErrNoGold) {
			return mcp.NewToolResultError("no gold diagnosis: give a scenario_id or a note that matches a library case"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}
	return jsonResult(fb)
}

// scenarioView leaves out the gold diagnosis; learners see only the note.
type scenarioView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Note  string `json:"note"`
}

type scenariosResponse struct {
	Scenarios []scenarioView `json:"scenarios"`
	Count     int            `json:"count"`
}

// ListScenarios handles the list_scenarios tool.
func (h *Handlers) ListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios := h.app.Dataset.Library.Scenarios()
	views := make([]scenarioView, len(scenarios))
	for i, sc := range scenarios {
		views[i] = viewOf(sc)
	}
	return jsonResult(scenariosResponse{Scenarios: views, Count: len(views)})
}

func viewOf(sc caselib.Scenario) scenarioView {
	return scenarioView{ID: sc.ID, Title: sc.Title, Note: sc.Note}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	responseJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
