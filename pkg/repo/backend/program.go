package backend

import (
	"context"
	"net/http"

	"github.com/scienceol/piwarmer/pkg/repo"
	"github.com/scienceol/piwarmer/pkg/repo/model"
)

type programImpl struct {
	repo.Requester
}

func NewProgramRepo(r repo.Requester) repo.ProgramRepo {
	return &programImpl{Requester: r}
}

func (p *programImpl) GetProgram(ctx context.Context, programID string) (*model.Program, error) {
	data := &model.Program{}
	if err := p.Request(ctx, http.MethodGet, "program/"+programID, nil, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (p *programImpl) GetDriver(ctx context.Context, driverID string) (*model.Driver, error) {
	data := &model.Driver{}
	if err := p.Request(ctx, http.MethodGet, "driver/"+driverID, nil, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (p *programImpl) DeleteProgram(ctx context.Context, programID string) error {
	return p.Request(ctx, http.MethodDelete, "program/"+programID, nil, nil)
}
