// Package mcp exposes project validation over the Model Context Protocol
// so editor agents can check a configuration without shelling out.
package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/narendrapsgim/rasa/internal/importer"
	"github.com/narendrapsgim/rasa/internal/validation"
	"github.com/narendrapsgim/rasa/pkg/advisory"
	"github.com/narendrapsgim/rasa/pkg/graph"
)

// Server wraps the MCP SDK server. Tools are stateless; every call loads
// the project files fresh so edits between calls are always picked up.
type Server struct {
	MCPServer   *sdkmcp.Server
	ProjectRoot string
}

// NewServer creates an MCP server with the validation tools registered.
// It captures the current working directory as the project root so
// relative paths in tool inputs resolve correctly.
func NewServer(version string) *Server {
	cwd, _ := os.Getwd()
	s := &Server{ProjectRoot: cwd}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "rasa", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "validate_project",
		Description: "Validate a pipeline configuration against the project's training data and domain. Returns warnings and the first hard error, if any.",
	}, s.handleValidateProject)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "inspect_training_data",
		Description: "Summarize the NLU training data found under the given data paths: intents, entities, synonyms, regexes and lookup tables.",
	}, s.handleInspectTrainingData)
}

type validateProjectInput struct {
	Config string   `json:"config" jsonschema:"path to the pipeline configuration file"`
	Domain string   `json:"domain,omitempty" jsonschema:"path to the domain file"`
	Data   []string `json:"data,omitempty" jsonschema:"training data files or directories"`
}

type finding struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Docs     string `json:"docs,omitempty"`
}

type validateProjectOutput struct {
	Valid    bool      `json:"valid"`
	Findings []finding `json:"findings"`
}

type inspectTrainingDataInput struct {
	Data []string `json:"data" jsonschema:"training data files or directories"`
}

type inspectTrainingDataOutput struct {
	Examples     int      `json:"examples"`
	Intents      []string `json:"intents"`
	Entities     []string `json:"entities"`
	Synonyms     int      `json:"synonyms"`
	Regexes      int      `json:"regexes"`
	LookupTables int      `json:"lookup_tables"`
	Warnings     []string `json:"warnings,omitempty"`
}

func (s *Server) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.ProjectRoot, path)
}

func (s *Server) resolveAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = s.resolve(p)
	}
	return out
}

func (s *Server) handleValidateProject(ctx context.Context, _ *sdkmcp.CallToolRequest, input validateProjectInput) (*sdkmcp.CallToolResult, validateProjectOutput, error) {
	if input.Config == "" {
		return nil, validateProjectOutput{}, fmt.Errorf("config is required")
	}

	schema, err := graph.LoadConfig(s.resolve(input.Config))
	if err != nil {
		return nil, validateProjectOutput{}, fmt.Errorf("load config: %w", err)
	}

	collector := &advisory.Collector{}
	restore := advisory.SetSink(collector)
	defer restore()

	imp := importer.NewFileImporter(s.resolve(input.Domain), s.resolveAll(input.Data))
	verr := validation.New(schema).Validate(ctx, imp)

	out := validateProjectOutput{Valid: verr == nil}
	for _, a := range collector.Advisories() {
		out.Findings = append(out.Findings, finding{
			Severity: "warning", Message: a.Message, Docs: a.Docs,
		})
	}
	if verr != nil {
		out.Findings = append(out.Findings, finding{
			Severity: "error", Message: verr.Error(),
		})
	}
	return nil, out, nil
}

func (s *Server) handleInspectTrainingData(ctx context.Context, _ *sdkmcp.CallToolRequest, input inspectTrainingDataInput) (*sdkmcp.CallToolResult, inspectTrainingDataOutput, error) {
	if len(input.Data) == 0 {
		return nil, inspectTrainingDataOutput{}, fmt.Errorf("data is required")
	}

	collector := &advisory.Collector{}
	restore := advisory.SetSink(collector)
	defer restore()

	imp := importer.NewFileImporter("", s.resolveAll(input.Data))
	td, err := imp.NLUData(ctx)
	if err != nil {
		return nil, inspectTrainingDataOutput{}, fmt.Errorf("load nlu data: %w", err)
	}

	out := inspectTrainingDataOutput{
		Examples:     len(td.Examples()),
		Intents:      td.Intents(),
		Synonyms:     len(td.EntitySynonyms()),
		Regexes:      len(td.RegexFeatures()),
		LookupTables: len(td.LookupTables()),
	}
	for entity := range td.Entities() {
		out.Entities = append(out.Entities, entity)
	}
	sort.Strings(out.Entities)
	for _, a := range collector.Advisories() {
		out.Warnings = append(out.Warnings, a.Message)
	}
	return nil, out, nil
}
