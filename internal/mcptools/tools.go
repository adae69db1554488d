// Package mcptools exposes the analytics service as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
)

const serverName = "nba-player-analytics"

// PlayerRef identifies a player by id or by (partial) name.
type PlayerRef struct {
	PlayerID *int   `json:"player_id,omitempty" jsonschema:"Player id from the roster"`
	Name     string `json:"name,omitempty" jsonschema:"Player name or unique part of it, used when player_id is absent"`
}

type SummaryArgs struct {
	Top int `json:"top,omitempty" jsonschema:"How many top scorers to list (default 5)"`
}

type SimilarArgs struct {
	PlayerID *int   `json:"player_id,omitempty" jsonschema:"Player id from the roster"`
	Name     string `json:"name,omitempty" jsonschema:"Player name, used when player_id is absent"`
	K        int    `json:"k,omitempty" jsonschema:"Number of neighbors (default from server config)"`
	Preset   string `json:"preset,omitempty" jsonschema:"Similarity preset: profile|detail"`
}

type ProjectArgs struct {
	PlayerID *int   `json:"player_id,omitempty" jsonschema:"Player id from the roster"`
	Name     string `json:"name,omitempty" jsonschema:"Player name, used when player_id is absent"`
}

type ClusterArgs struct {
	K             int      `json:"k,omitempty" jsonschema:"Number of clusters (default from server config)"`
	Seed          *int64   `json:"seed,omitempty" jsonschema:"Random seed for reproducible clusters"`
	MaxIterations int      `json:"max_iterations,omitempty" jsonschema:"Iteration cap (default 100)"`
	Features      []string `json:"features,omitempty" jsonschema:"Feature names to cluster on"`
}

type CompareArgs struct {
	A      PlayerRef `json:"a" jsonschema:"First player"`
	B      PlayerRef `json:"b" jsonschema:"Second player"`
	Preset string    `json:"preset,omitempty" jsonschema:"Similarity preset: profile|detail"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tools binds MCP tool handlers to a players service.
type Tools struct {
	svc      *players.Service
	logger   *slog.Logger
	registry []toolInfo
}

// New constructs Tools for svc.
func New(svc *players.Service, logger *slog.Logger) *Tools {
	return &Tools{svc: svc, logger: logger}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(svc *players.Service, logger *slog.Logger, version string) (*mcp.Server, *Tools) {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	tools := New(svc, logger)
	tools.Register(server)
	return server, tools
}

// NewHandler serves server over streamable HTTP with plain JSON responses.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// Register adds the tools to server.
func (t *Tools) Register(server *mcp.Server) {
	addTool(server, &t.registry, &mcp.Tool{
		Name:        "roster_summary",
		Description: "Roster size, team count, average points and top scorers",
	}, t.rosterSummary)
	addTool(server, &t.registry, &mcp.Tool{
		Name:        "similar_players",
		Description: "Most statistically similar players to a given player",
	}, t.similarPlayers)
	addTool(server, &t.registry, &mcp.Tool{
		Name:        "project_player",
		Description: "Next-season points, rebounds and assists projection for a player",
	}, t.projectPlayer)
	addTool(server, &t.registry, &mcp.Tool{
		Name:        "cluster_players",
		Description: "Group the roster into k statistical archetypes with k-means",
	}, t.clusterPlayers)
	addTool(server, &t.registry, &mcp.Tool{
		Name:        "compare_players",
		Description: "Side-by-side stat deltas and similarity score for two players",
	}, t.comparePlayers)
}

// Names lists the registered tool names in registration order.
func (t *Tools) Names() []string {
	out := make([]string, len(t.registry))
	for i, info := range t.registry {
		out[i] = info.Name
	}
	return out
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func (t *Tools) rosterSummary(ctx context.Context, req *mcp.CallToolRequest, args SummaryArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.svc.Summary(args.Top)), nil, nil
}

func (t *Tools) similarPlayers(ctx context.Context, req *mcp.CallToolRequest, args SimilarArgs) (*mcp.CallToolResult, any, error) {
	id, err := t.resolve(PlayerRef{PlayerID: args.PlayerID, Name: args.Name})
	if err != nil {
		return t.toolError("similar_players", err), nil, nil
	}
	k := args.K
	if k <= 0 {
		k = t.svc.Defaults().NeighborCount
	}
	res, err := t.svc.Similar(id, k, args.Preset)
	if err != nil {
		return t.toolError("similar_players", err), nil, nil
	}
	return toolJSON(res), nil, nil
}

func (t *Tools) projectPlayer(ctx context.Context, req *mcp.CallToolRequest, args ProjectArgs) (*mcp.CallToolResult, any, error) {
	id, err := t.resolve(PlayerRef{PlayerID: args.PlayerID, Name: args.Name})
	if err != nil {
		return t.toolError("project_player", err), nil, nil
	}
	proj, err := t.svc.Project(id)
	if err != nil {
		return t.toolError("project_player", err), nil, nil
	}
	return toolJSON(proj), nil, nil
}

func (t *Tools) clusterPlayers(ctx context.Context, req *mcp.CallToolRequest, args ClusterArgs) (*mcp.CallToolResult, any, error) {
	creq := players.ClusterRequest{K: args.K, Seed: args.Seed, MaxIterations: args.MaxIterations}
	for _, name := range args.Features {
		f, err := analytics.ParseFeature(strings.TrimSpace(name))
		if err != nil {
			return t.toolError("cluster_players", err), nil, nil
		}
		creq.Features = append(creq.Features, f)
	}
	view, err := t.svc.Cluster(creq)
	if err != nil {
		return t.toolError("cluster_players", err), nil, nil
	}
	return toolJSON(view), nil, nil
}

func (t *Tools) comparePlayers(ctx context.Context, req *mcp.CallToolRequest, args CompareArgs) (*mcp.CallToolResult, any, error) {
	a, err := t.resolve(args.A)
	if err != nil {
		return t.toolError("compare_players", err), nil, nil
	}
	b, err := t.resolve(args.B)
	if err != nil {
		return t.toolError("compare_players", err), nil, nil
	}
	cmp, err := t.svc.Compare(a, b, args.Preset)
	if err != nil {
		return t.toolError("compare_players", err), nil, nil
	}
	return toolJSON(cmp), nil, nil
}

var errAmbiguousName = errors.New("name matches more than one player")

// resolve turns a PlayerRef into an id. An exact name match wins over substring matches.
func (t *Tools) resolve(ref PlayerRef) (int, error) {
	if ref.PlayerID != nil {
		return *ref.PlayerID, nil
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: player_id or name is required", players.ErrInvalidArgument)
	}
	res, err := t.svc.Query(players.Query{Search: name})
	if err != nil {
		return 0, err
	}
	switch len(res.Players) {
	case 0:
		return 0, fmt.Errorf("%w: no player named %q", players.ErrPlayerNotFound, name)
	case 1:
		return res.Players[0].ID, nil
	}
	if p, ok := exactName(res.Players, name); ok {
		return p.ID, nil
	}
	return 0, fmt.Errorf("%w: %q (%d matches)", errAmbiguousName, name, len(res.Players))
}

func exactName(candidates []domainplayers.Record, name string) (domainplayers.Record, bool) {
	for _, p := range candidates {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domainplayers.Record{}, false
}

func toolJSON(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}

func (t *Tools) toolError(tool string, err error) *mcp.CallToolResult {
	logging.Warn(t.logger, "mcp tool failed", slog.String("tool", tool), slog.Any("err", err))
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
