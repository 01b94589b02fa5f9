package mock

import (
	"context"

	"github.com/fwojciec/relic"
)

var _ relic.Emitter = (*Emitter)(nil)

// Emitter is a mock implementation of relic.Emitter.
type Emitter struct {
	EmitFn func(ctx context.Context, path, content string) error
}

func (e *Emitter) Emit(ctx context.Context, path, content string) error {
	return e.EmitFn(ctx, path, content)
}
