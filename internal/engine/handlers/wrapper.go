package handlers

import (
	"fmt"

	"photohunt-server/internal/domain"
)

// DirectionHandlerFunc - "чистый" хендлер, которому нужно только направление
type DirectionHandlerFunc func(ctx Context, dir domain.Direction) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (take_picture)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithDirection берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя проверку направления.
func WithDirection(handler DirectionHandlerFunc) HandlerFunc {
	return func(ctx Context, ev domain.ClientEvent) (Result, error) {
		if !ev.Direction.Valid() {
			return Result{}, fmt.Errorf("validation failed: bad direction %d", ev.Direction)
		}
		return handler(ctx, ev.Direction)
	}
}

// WithEmptyPayload - обертка для команд без данных
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ domain.ClientEvent) (Result, error) {
		return handler(ctx)
	}
}
