package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
	"github.com/cloudwego/eino/compose"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/graph/nodes"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/graph/observers"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

const maxRunSteps = 20

// GraphBuilder handles the construction of the response decision graph.
type GraphBuilder struct {
	deps  *nodes.Deps
	graph *compose.Graph[model.ChatRequest, *model.ChatReply]
}

// BuildGraph constructs and returns the compiled decision graph.
func BuildGraph(ctx context.Context, deps *nodes.Deps) (compose.Runnable[model.ChatRequest, *model.ChatReply], error) {
	if err := validateDeps(deps); err != nil {
		return nil, err
	}

	b := &GraphBuilder{
		deps:  deps,
		graph: compose.NewGraph[model.ChatRequest, *model.ChatReply](),
	}
	if err := b.addNodes(); err != nil {
		return nil, err
	}
	if err := b.addEdges(); err != nil {
		return nil, err
	}
	if err := b.addBranches(); err != nil {
		return nil, err
	}
	return b.compile(ctx)
}

func validateDeps(d *nodes.Deps) error {
	switch {
	case d == nil:
		return fmt.Errorf("graph deps are nil")
	case d.Knowledge == nil || d.Settings == nil:
		return fmt.Errorf("knowledge and settings stores are required")
	case d.Conversations == nil:
		return fmt.Errorf("conversation store is nil")
	case d.Fallback == nil || d.Suggestions == nil:
		return fmt.Errorf("fallback and suggestion engines are required")
	}
	return nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	lambdas := []struct {
		key    string
		lambda *compose.Lambda
	}{
		{nodes.NodeInputConverter, nodes.NewInputConverterNode(b.deps)},
		{nodes.NodeContextBuilder, nodes.NewContextBuilderNode(b.deps)},
		{nodes.NodeGenerator, nodes.NewGeneratorNode(b.deps)},
		{nodes.NodeValidator, nodes.NewValidatorNode(b.deps)},
		{nodes.NodeFallback, nodes.NewFallbackNode(b.deps)},
		{nodes.NodeFinalizer, nodes.NewFinalizerNode(b.deps)},
	}
	for _, l := range lambdas {
		if err := b.graph.AddLambdaNode(l.key, l.lambda, compose.WithNodeName(l.key)); err != nil {
			logx.Error().Err(err).Str("node", l.key).Msg("Error adding node")
			return fmt.Errorf("error adding node %s: %w", l.key, err)
		}
	}
	return nil
}

// addEdges creates the unconditional connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeContextBuilder, nodes.NodeGenerator},
		{nodes.NodeFallback, nodes.NodeFinalizer},
		{nodes.NodeFinalizer, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			logx.Error().Err(err).Str("from", edge[0]).Str("to", edge[1]).Msg("Error adding edge")
			return fmt.Errorf("error adding edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	branches := []struct {
		from   string
		branch *compose.GraphBranch
	}{
		{
			from: nodes.NodeInputConverter,
			branch: compose.NewGraphBranch(nodes.NewConfiguredCondition(b.deps), map[string]bool{
				nodes.NodeContextBuilder: true,
				nodes.NodeFallback:       true,
			}),
		},
		{
			from: nodes.NodeGenerator,
			branch: compose.NewGraphBranch(nodes.NewGeneratorCondition(), map[string]bool{
				nodes.NodeValidator: true,
				nodes.NodeFallback:  true,
				nodes.NodeFinalizer: true,
			}),
		},
		{
			from: nodes.NodeValidator,
			branch: compose.NewGraphBranch(nodes.NewValidatorCondition(), map[string]bool{
				nodes.NodeFinalizer: true,
				nodes.NodeFallback:  true,
			}),
		},
	}
	for _, br := range branches {
		if err := b.graph.AddBranch(br.from, br.branch); err != nil {
			logx.Error().Err(err).Str("from", br.from).Msg("Error adding branch")
			return fmt.Errorf("error adding branch from %s: %w", br.from, err)
		}
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.ChatRequest, *model.ChatReply], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxRunSteps), compose.WithGraphName("sa_helper_response"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}

// invoke runs the graph with observers attached and unwraps node errors.
func invoke(ctx context.Context, r compose.Runnable[model.ChatRequest, *model.ChatReply], in model.ChatRequest) (*model.ChatReply, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, model.ErrEmptyInput
	}
	out, err := r.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			return nil, model.ErrEmptyInput
		}
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("graph returned no reply")
	}
	return out, nil
}
