package weather

import (
	"context"
	"log"
)

// Handler performs one kind of management operation for a free-text command.
type Handler interface {
	Handle(ctx context.Context, command string) (any, error)
}

// Dispatcher classifies a command and routes it to the handler registered for
// the resulting operation type.
type Dispatcher struct {
	completer Completer
	routes    map[OperationType]Handler
}

// NewDispatcher creates a Dispatcher with the given routing table.
func NewDispatcher(completer Completer, routes map[OperationType]Handler) *Dispatcher {
	return &Dispatcher{
		completer: completer,
		routes:    routes,
	}
}

// Dispatch classifies command and passes it to the matching handler. The handler's
// result is returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, command string) (any, error) {
	op, err := d.classify(ctx, command)
	if err != nil {
		log.Printf("ERROR: determining operation type: %v", err)
		return nil, err
	}
	log.Printf("DEBUG: command classified as %q", op)

	h, ok := d.routes[op]
	if !ok {
		return nil, ErrUnknownOperation
	}
	return h.Handle(ctx, command)
}

func (d *Dispatcher) classify(ctx context.Context, command string) (OperationType, error) {
	raw, err := d.completer.Complete(ctx, classifyMessages(command), OperationTypeSchema)
	if err != nil {
		return "", &ProviderError{Op: "classify command", Err: err}
	}
	return ParseOperationType(raw)
}
