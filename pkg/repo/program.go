package repo

import (
	"context"

	"github.com/scienceol/piwarmer/pkg/repo/model"
)

// Requester is the generic backend request helper. Result is decoded only when
// the backend answers with a success status; any other outcome is an error.
type Requester interface {
	Request(ctx context.Context, method, path string, body, result any) error
}

type ProgramRepo interface {
	GetProgram(ctx context.Context, programID string) (*model.Program, error)
	GetDriver(ctx context.Context, driverID string) (*model.Driver, error)
	DeleteProgram(ctx context.Context, programID string) error
}
