package code

import (
	"errors"
	"fmt"
)

type ErrCode int

const (
	Success ErrCode = 0
)

const (
	UnDefineErr ErrCode = iota + 10000
	ParamErr
	RecordNotFound
	RPCHttpErr
	RPCHttpCodeErr
	RPCHttpRespErr
	StepsDecodeErr
	TimelineErr
)

var codeMsg = map[ErrCode]string{
	Success:        "success",
	UnDefineErr:    "undefined error",
	ParamErr:       "parameter error",
	RecordNotFound: "record not found",
	RPCHttpErr:     "backend request failed",
	RPCHttpCodeErr: "backend returned non-success status",
	RPCHttpRespErr: "backend response decode failed",
	StepsDecodeErr: "program steps decode failed",
	TimelineErr:    "program timeline build failed",
}

func (c ErrCode) String() string {
	if msg, ok := codeMsg[c]; ok {
		return msg
	}
	return fmt.Sprintf("code(%d)", int(c))
}

func (c ErrCode) Error() string {
	return c.String()
}

func (c ErrCode) WithMsg(msg string) *Err {
	return &Err{Code: c, Msg: msg}
}

func (c ErrCode) WithMsgf(format string, args ...any) *Err {
	return &Err{Code: c, Msg: fmt.Sprintf(format, args...)}
}

func (c ErrCode) WithErr(err error) *Err {
	e := &Err{Code: c, err: err}
	if err != nil {
		e.Msg = err.Error()
	}
	return e
}

// Err is an ErrCode carrying detail. errors.Is matches it against its bare code.
type Err struct {
	Code ErrCode
	Msg  string
	err  error
}

func (e *Err) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code.String(), e.Msg)
}

func (e *Err) Unwrap() error {
	return e.err
}

func (e *Err) Is(target error) bool {
	var c ErrCode
	if errors.As(target, &c) {
		return c == e.Code
	}
	var other *Err
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// Of extracts the code carried by err, UnDefineErr when there is none.
func Of(err error) ErrCode {
	if err == nil {
		return Success
	}
	var e *Err
	if errors.As(err, &e) {
		return e.Code
	}
	var c ErrCode
	if errors.As(err, &c) {
		return c
	}
	return UnDefineErr
}
