package app

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type invariantRoute struct {
	module string
	route  string
	invar  sdk.Invariant
}

// InvariantRegistry collects module invariants and asserts them in
// registration order.
type InvariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*InvariantRegistry)(nil)

// RegisterRoute implements sdk.InvariantRegistry.
func (r *InvariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{module: moduleName, route: route, invar: invar})
}

// Routes returns the registered routes as "<module>/<route>".
func (r *InvariantRegistry) Routes() []string {
	names := make([]string, len(r.routes))
	for i, ir := range r.routes {
		names[i] = ir.module + "/" + ir.route
	}
	return names
}

// Assert runs every invariant and returns an error for the first broken one.
func (r *InvariantRegistry) Assert(ctx sdk.Context) error {
	for _, ir := range r.routes {
		if msg, broken := ir.invar(ctx); broken {
			return fmt.Errorf("invariant %s/%s broken: %s", ir.module, ir.route, msg)
		}
	}
	return nil
}
