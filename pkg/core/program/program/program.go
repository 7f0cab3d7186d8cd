package program

import (
	"context"

	"github.com/scienceol/piwarmer/internal/config"
	"github.com/scienceol/piwarmer/pkg/common/code"
	"github.com/scienceol/piwarmer/pkg/core/program"
	"github.com/scienceol/piwarmer/pkg/core/program/detail"
	"github.com/scienceol/piwarmer/pkg/core/program/timeline"
	"github.com/scienceol/piwarmer/pkg/middleware/logger"
	"github.com/scienceol/piwarmer/pkg/repo"
	"github.com/scienceol/piwarmer/pkg/repo/backend"
	"github.com/scienceol/piwarmer/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentation = "github.com/scienceol/piwarmer/pkg/core/program"
	defaultUpcoming = 5
)

type programImpl struct {
	programStore repo.ProgramRepo
	escapeHTML   bool
	tracer       trace.Tracer
	renders      metric.Int64Counter
	deletes      metric.Int64Counter
}

func NewProgram() program.Service {
	return NewProgramWithRepo(backend.NewProgramRepo(backend.New()), config.Global().View.EscapeHTML)
}

func NewProgramWithRepo(store repo.ProgramRepo, escapeHTML bool) program.Service {
	p := &programImpl{
		programStore: store,
		escapeHTML:   escapeHTML,
		tracer:       otel.Tracer(instrumentation),
	}
	meter := otel.Meter(instrumentation)
	var err error
	if p.renders, err = meter.Int64Counter("program.detail.renders",
		metric.WithDescription("program detail page loads by outcome")); err != nil {
		logger.Warnf(context.Background(), "create renders counter err: %+v", err)
	}
	if p.deletes, err = meter.Int64Counter("program.deletes",
		metric.WithDescription("program delete clicks by outcome")); err != nil {
		logger.Warnf(context.Background(), "create deletes counter err: %+v", err)
	}
	return p
}

func (p *programImpl) Detail(ctx context.Context, req *program.DetailReq) (*program.DetailResp, error) {
	ctx, span := p.start(ctx, "program.Detail", req.ProgramID)
	defer span.End()

	view := detail.New(p.programStore, req.ProgramID, detail.WithEscapeHTML(p.escapeHTML))
	outcome := "ok"
	if err := view.Initialize(ctx); err != nil {
		outcome = "partial"
		logger.Warnf(ctx, "program %s detail incomplete: %+v", req.ProgramID, err)
	}
	p.count(ctx, p.renders, outcome)

	return &program.DetailResp{
		ProgramID:      view.ProgramID(),
		Scientist:      view.Scientist(),
		ConfirmMessage: detail.DeleteWarning,
		Page:           view.Page(),
	}, nil
}

func (p *programImpl) Delete(ctx context.Context, req *program.DeleteReq) (*program.DeleteResp, error) {
	ctx, span := p.start(ctx, "program.Delete", req.ProgramID)
	defer span.End()

	view := detail.New(p.programStore, req.ProgramID, detail.WithScientist(req.Scientist))
	location, err := view.OnDeleteClicked(ctx, func(string) bool { return req.Confirmed })
	if err != nil {
		p.count(ctx, p.deletes, "failed")
		span.RecordError(err)
		logger.Errorf(ctx, "delete program %s err: %+v", req.ProgramID, err)
		return nil, err
	}
	if location == "" {
		p.count(ctx, p.deletes, "declined")
		return &program.DeleteResp{}, nil
	}
	p.count(ctx, p.deletes, "deleted")
	logger.Infof(ctx, "program %s deleted, owner %s", req.ProgramID, req.Scientist)
	return &program.DeleteResp{Deleted: true, Location: location}, nil
}

func (p *programImpl) Timeline(ctx context.Context, req *program.TimelineReq) (*program.TimelineResp, error) {
	ctx, span := p.start(ctx, "program.Timeline", req.ProgramID)
	defer span.End()

	data, err := p.programStore.GetProgram(ctx, req.ProgramID)
	if err != nil {
		logger.Errorf(ctx, "timeline get program %s err: %+v", req.ProgramID, err)
		return nil, err
	}
	steps, err := program.ParseSteps(data.Steps)
	if err != nil {
		return nil, err
	}
	tl, err := timeline.Build(steps)
	if err != nil {
		return nil, err
	}

	upcoming, err := tl.Upcoming(utils.Or(req.Next, defaultUpcoming), req.Elapsed)
	if err != nil {
		return nil, code.ParamErr.WithErr(err)
	}

	resp := &program.TimelineResp{
		TotalDuration: tl.TotalDuration,
		SecondsLeft:   tl.SecondsLeft(req.Elapsed),
		Upcoming:      make([]program.UpcomingSetting, 0, len(upcoming)),
	}
	if temp, ok := tl.DesiredTemperature(req.Elapsed); ok {
		resp.Running = true
		resp.DesiredTemperature = &temp
	}
	for _, u := range upcoming {
		resp.Upcoming = append(resp.Upcoming, program.UpcomingSetting{
			Message:   u.Message,
			TimeUntil: u.TimeUntil,
		})
	}
	return resp, nil
}

func (p *programImpl) count(ctx context.Context, counter metric.Int64Counter, outcome string) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (p *programImpl) start(ctx context.Context, name, programID string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("program.id", programID)))
}
