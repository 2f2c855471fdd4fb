package weather

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// UpdateHandler extracts a weather update from a command and merges it into the store.
type UpdateHandler struct {
	store     Store
	completer Completer
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(store Store, completer Completer) *UpdateHandler {
	return &UpdateHandler{store: store, completer: completer}
}

// Handle returns the validated Update as extracted, before empty fields are stripped.
func (h *UpdateHandler) Handle(ctx context.Context, command string) (any, error) {
	raw, err := h.completer.Complete(ctx, updateMessages(command), WeatherUpdateSchema)
	if err != nil {
		return nil, &ProviderError{Op: "extract weather update", Err: err}
	}

	update, err := ParseUpdate(raw)
	if err != nil {
		return nil, err
	}
	update.City = strings.TrimSpace(update.City)
	if update.City == "" {
		return nil, ErrInvalidCity
	}

	if err := h.store.Merge(ctx, update.City, update.Stripped()); err != nil {
		return nil, fmt.Errorf("merge weather for %s: %w", update.City, err)
	}
	log.Printf("INFO: merged weather update for %s", update.City)
	return update, nil
}

// DeleteHandler extracts a city from a command and deletes its record.
type DeleteHandler struct {
	store     Store
	completer Completer
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(store Store, completer Completer) *DeleteHandler {
	return &DeleteHandler{store: store, completer: completer}
}

// Handle deletes the resolved city. Deleting a city that has no record succeeds.
func (h *DeleteHandler) Handle(ctx context.Context, command string) (any, error) {
	raw, err := h.completer.Complete(ctx, deleteMessages(command), DeleteTargetSchema)
	if err != nil {
		return nil, &ProviderError{Op: "extract delete target", Err: err}
	}

	target, err := ParseDeleteTarget(raw)
	if err != nil {
		return nil, err
	}

	if err := h.store.Delete(ctx, target.City); err != nil {
		return nil, fmt.Errorf("delete weather for %s: %w", target.City, err)
	}
	log.Printf("INFO: deleted weather for %s", target.City)
	return target, nil
}
