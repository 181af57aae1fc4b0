package services

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/dto"
)

// ClosureWriterSvc closes and reopens drawers.
type ClosureWriterSvc interface {
	// CloseDrawer reconciles the active opening and records its closure.
	CloseDrawer(ctx context.Context, userID string, req dto.CloseDrawerRequest) (*domain.Closure, error)

	// ReopenClosure undoes a closure so its opening is active again.
	// It returns false when the closure does not exist.
	ReopenClosure(ctx context.Context, userID, closureID string) (bool, error)

	DeleteClosure(ctx context.Context, userID, closureID string) error
}

// ClosureReaderSvc serves the closure history.
type ClosureReaderSvc interface {
	GetClosure(ctx context.Context, userID, closureID string) (*domain.Closure, error)
	// ListClosures returns a page of history and the token of the next page, empty on the last one.
	ListClosures(ctx context.Context, userID string, params dto.ListClosuresParams) ([]domain.Closure, string, error)
	ListClosureMonths(ctx context.Context, userID string) ([]domain.ClosureMonth, error)
}

// ClosureSvcFacade combines all closure-related service interfaces
type ClosureSvcFacade interface {
	ClosureWriterSvc
	ClosureReaderSvc
}
