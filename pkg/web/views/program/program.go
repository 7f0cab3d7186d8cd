package program

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/scienceol/piwarmer/pkg/common"
	"github.com/scienceol/piwarmer/pkg/common/code"
	"github.com/scienceol/piwarmer/pkg/core/program"
	impl "github.com/scienceol/piwarmer/pkg/core/program/program"
	"github.com/scienceol/piwarmer/pkg/middleware/logger"
)

type Handle struct {
	pService program.Service
}

func NewProgramHandle() *Handle {
	return NewProgramHandleWith(impl.NewProgram())
}

func NewProgramHandleWith(svc program.Service) *Handle {
	return &Handle{pService: svc}
}

// Page renders the program detail page. Backend failures render empty regions.
//
//	@Summary	Program detail page
//	@Tags		page
//	@Produce	html
//	@Param		id	query	string	true	"program id"
//	@Success	200
//	@Failure	400
//	@Router		/program/detail [get]
func (p *Handle) Page(ctx *gin.Context) {
	req, ok := p.bindDetail(ctx)
	if !ok {
		return
	}
	resp, err := p.pService.Detail(ctx, req)
	if err != nil {
		logger.Errorf(ctx, "program detail page err: %+v", err)
		resp = &program.DetailResp{ProgramID: req.ProgramID}
	}

	ctx.Render(http.StatusOK, render.HTML{
		Template: pageTmpl,
		Name:     "detail",
		Data:     resp,
	})
}

// DeleteForm handles the page's delete control. A declined or failed delete
// answers 204 so the browser stays on the page.
//
//	@Summary	Delete control of the detail page
//	@Tags		page
//	@Accept		x-www-form-urlencoded
//	@Param		id			formData	string	true	"program id"
//	@Param		scientist	formData	string	false	"owner to return to"
//	@Param		confirmed	formData	bool	false	"user accepted the warning"
//	@Success	204
//	@Success	302
//	@Router		/program/detail/delete [post]
func (p *Handle) DeleteForm(ctx *gin.Context) {
	req := &program.DeleteReq{}
	if err := ctx.ShouldBind(req); err != nil {
		logger.Errorf(ctx, "parse DeleteForm param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if _, ok := ctx.GetPostForm("id"); !ok {
		common.ReplyErr(ctx, code.ParamErr.WithMsg("id is required"))
		return
	}

	resp, err := p.pService.Delete(ctx, req)
	if err != nil || !resp.Deleted {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.Redirect(http.StatusFound, resp.Location)
}

//	@Summary	Program detail regions
//	@Tags		program
//	@Produce	json
//	@Param		id	query		string	true	"program id"
//	@Success	200	{object}	common.Resp
//	@Router		/api/v1/program/detail [get]
func (p *Handle) Detail(ctx *gin.Context) {
	req, ok := p.bindDetail(ctx)
	if !ok {
		return
	}
	resp, err := p.pService.Detail(ctx, req)
	common.Reply(ctx, err, resp)
}

// Delete is the API form of the delete control; the call itself is the
// confirmation.
//
//	@Summary	Delete a program
//	@Tags		program
//	@Produce	json
//	@Param		id			path		string	true	"program id"
//	@Param		scientist	query		string	false	"owner to return to"
//	@Success	200			{object}	common.Resp
//	@Router		/api/v1/program/{id} [delete]
func (p *Handle) Delete(ctx *gin.Context) {
	req := &program.DeleteReq{
		ProgramID: ctx.Param("id"),
		Scientist: ctx.Query("scientist"),
		Confirmed: true,
	}
	resp, err := p.pService.Delete(ctx, req)
	common.Reply(ctx, err, resp)
}

//	@Summary	Program timeline at an elapsed time
//	@Tags		program
//	@Produce	json
//	@Param		id		query		string	true	"program id"
//	@Param		elapsed	query		number	false	"seconds since start"
//	@Param		next	query		int		false	"upcoming settings to list"
//	@Success	200		{object}	common.Resp
//	@Failure	400		{object}	common.Resp
//	@Router		/api/v1/program/timeline [get]
func (p *Handle) Timeline(ctx *gin.Context) {
	req := &program.TimelineReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse Timeline param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := p.pService.Timeline(ctx, req)
	common.Reply(ctx, err, resp)
}

// bindDetail requires the id parameter to be present. An empty id is used
// as given.
func (p *Handle) bindDetail(ctx *gin.Context) (*program.DetailReq, bool) {
	req := &program.DetailReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse Detail param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return nil, false
	}
	if _, ok := ctx.GetQuery("id"); !ok {
		common.ReplyErr(ctx, code.ParamErr.WithMsg("id is required"))
		return nil, false
	}
	return req, true
}
