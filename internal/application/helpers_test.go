package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/bnema/halo-bridge/internal/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gatewayCall struct {
	operation string
	path      string
	scope     ports.Scope
	payload   any
}

// fakeGateway answers by operation name. Queued payloads are consumed in order; the last one repeats.
type fakeGateway struct {
	t *testing.T

	mu        sync.Mutex
	responses map[string][]string
	failures  map[string]error
	calls     []gatewayCall
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	return &fakeGateway{t: t, responses: map[string][]string{}, failures: map[string]error{}}
}

func (g *fakeGateway) respondWith(operation string, payloads ...string) *fakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[operation] = append(g.responses[operation], payloads...)
	return g
}

func (g *fakeGateway) failWith(operation string, err error) *fakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[operation] = err
	return g
}

func (g *fakeGateway) GraphQL(_ context.Context, req ports.GraphQLRequest, out any) error {
	return g.respond(gatewayCall{operation: req.Operation, scope: req.Scope, payload: req.Variables}, out)
}

func (g *fakeGateway) REST(_ context.Context, req ports.RESTRequest, out any) error {
	return g.respond(gatewayCall{operation: req.Operation, path: req.Path, scope: req.Scope, payload: req.Body}, out)
}

func (g *fakeGateway) respond(call gatewayCall, out any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, call)
	if err, ok := g.failures[call.operation]; ok {
		return err
	}

	queue, ok := g.responses[call.operation]
	if !ok {
		return errors.New("unexpected operation " + call.operation)
	}
	payload := queue[0]
	if len(queue) > 1 {
		g.responses[call.operation] = queue[1:]
	}

	if out == nil || payload == "" {
		return nil
	}
	require.NoError(g.t, json.Unmarshal([]byte(payload), out))
	return nil
}

func (g *fakeGateway) operations() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	operations := make([]string, 0, len(g.calls))
	for _, call := range g.calls {
		operations = append(operations, call.operation)
	}
	return operations
}

func (g *fakeGateway) callsFor(operation string) []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()

	var matched []gatewayCall
	for _, call := range g.calls {
		if call.operation == operation {
			matched = append(matched, call)
		}
	}
	return matched
}

func mockAnyContext() interface{} {
	return mock.Anything
}
