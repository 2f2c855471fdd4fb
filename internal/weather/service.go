package weather

import (
	"context"
)

// Service exposes the question and management pipelines over one store and provider pair.
type Service struct {
	store      Store
	responder  *Responder
	dispatcher *Dispatcher
}

// NewService wires the responder, dispatcher and mutation handlers from their collaborators.
func NewService(store Store, completer Completer, embedder Embedder) *Service {
	routes := map[OperationType]Handler{
		OperationUpdateOrAdd: NewUpdateHandler(store, completer),
		OperationDelete:      NewDeleteHandler(store, completer),
	}
	return &Service{
		store:      store,
		responder:  NewResponder(store, completer, embedder),
		dispatcher: NewDispatcher(completer, routes),
	}
}

// Answer delegates to the responder.
func (s *Service) Answer(ctx context.Context, question string) (Answer, error) {
	return s.responder.Answer(ctx, question)
}

// Manage delegates to the dispatcher.
func (s *Service) Manage(ctx context.Context, command string) (any, error) {
	return s.dispatcher.Dispatch(ctx, command)
}

// Records delegates to the underlying store.
func (s *Service) Records(ctx context.Context) ([]Record, error) {
	return s.store.GetAll(ctx)
}

// Record delegates to the underlying store.
func (s *Service) Record(ctx context.Context, city string) (Record, error) {
	return s.store.Get(ctx, city)
}
