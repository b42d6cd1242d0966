// Package mcpserver exposes retrieval, highlighting and assessment as
// Model Context Protocol tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/abhisek/dxtutor/internal/app"
)

// Server metadata reported to MCP clients.
const (
	ServerName = "dxtutor"
)

// New creates an MCP server with every dxtutor tool registered.
func New(a *app.App, version string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(ServerName, version)
	RegisterTools(s, a)
	return s
}

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, a *app.App) *Handlers {
	handlers := NewHandlers(a)

	server.AddTool(mcp.Tool{
		Name:        "retrieve_cases",
		Description: "Rank the reference case library against a free-text clinical note by TF-IDF cosine similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"note": map[string]interface{}{
					"type":        "string",
					"description": "Free-text clinical note",
				},
				"k": map[string]interface{}{
					"type":        "number",
					"description": "Number of cases to return (default: configured top-k)",
				},
			},
			Required: []string{"note"},
		},
	}, handlers.RetrieveCases)

	server.AddTool(mcp.Tool{
		Name:        "highlight_diagnosis",
		Description: "Return a diagnosis with its ancestor chain, its associated clinical features and the graph element ids to highlight.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"diagnosis_id": map[string]interface{}{
					"type":        "string",
					"description": "Diagnosis node id, e.g. icop_l3_disc",
				},
			},
			Required: []string{"diagnosis_id"},
		},
	}, handlers.HighlightDiagnosis)

	server.AddTool(mcp.Tool{
		Name:        "assess_attempt",
		Description: "Score a learner's diagnosis and selected features against the gold answer and record the attempt.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"student_id": map[string]interface{}{
					"type":        "string",
					"description": "Learner identifier",
				},
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario or case id providing the gold diagnosis",
				},
				"note": map[string]interface{}{
					"type":        "string",
					"description": "Clinical note; used for retrieval when no scenario is given",
				},
				"diagnosis": map[string]interface{}{
					"type":        "string",
					"description": "Selected diagnosis id",
				},
				"features": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Selected feature ids",
				},
				"justification": map[string]interface{}{
					"type":        "string",
					"description": "Free-text reasoning for the diagnosis",
				},
			},
			Required: []string{"diagnosis", "features", "justification"},
		},
	}, handlers.AssessAttempt)

	server.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List the practice scenarios with their notes.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListScenarios)

	return handlers
}
