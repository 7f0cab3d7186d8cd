package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/piwarmer/pkg/common/code"
)

type Error struct {
	Msg  string   `json:"msg"`
	Info []string `json:"info,omitempty"`
}

type Resp struct {
	Code  code.ErrCode `json:"code"`
	Data  any          `json:"data,omitempty"`
	Error *Error       `json:"error,omitempty"`
}

func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	status := http.StatusOK
	c := code.Of(err)
	if c == code.ParamErr {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, &Resp{
		Code: c,
		Error: &Error{
			Msg:  err.Error(),
			Info: msgs,
		},
	})
}
