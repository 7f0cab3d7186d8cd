package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/scienceol/piwarmer/internal/config"
	"github.com/scienceol/piwarmer/pkg/common/code"
	"github.com/scienceol/piwarmer/pkg/middleware/logger"
	"github.com/scienceol/piwarmer/pkg/repo"
)

// Client talks to the program backend. Paths are relative to the configured
// base address and are sent as given.
type Client struct {
	cli *resty.Client
}

var _ repo.Requester = (*Client)(nil)

func New() *Client {
	return NewClient(config.Global().Backend)
}

func NewClient(conf config.Backend) *Client {
	cli := resty.New().
		EnableTrace().
		SetBaseURL(conf.Addr).
		SetHeader("Accept", "application/json")
	if conf.Timeout > 0 {
		cli.SetTimeout(conf.Timeout)
	}
	return &Client{cli: cli}
}

func (c *Client) Request(ctx context.Context, method, path string, body, result any) error {
	req := c.cli.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		logger.Errorf(ctx, "backend %s %s err: %+v", method, path, err)
		return code.RPCHttpErr.WithErr(err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		logger.Warnf(ctx, "backend %s %s not found", method, path)
		return code.RecordNotFound.WithMsgf("%s %s", method, path)
	}
	if !resp.IsSuccess() {
		logger.Warnf(ctx, "backend %s %s http code: %d", method, path, resp.StatusCode())
		return code.RPCHttpCodeErr.WithMsgf("%s %s code: %d", method, path, resp.StatusCode())
	}

	logger.Debugf(ctx, "backend %s %s took %s", method, path, resp.Request.TraceInfo().TotalTime)
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		logger.Errorf(ctx, "backend %s %s decode err: %+v", method, path, err)
		return code.RPCHttpRespErr.WithErr(err)
	}
	return nil
}

// Ping reports whether the backend answers at all. Any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.cli.R().SetContext(ctx).Head("/"); err != nil {
		return code.RPCHttpErr.WithErr(err)
	}
	return nil
}
