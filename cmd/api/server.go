package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/piwarmer/internal/config"
	"github.com/scienceol/piwarmer/pkg/middleware/logger"
	"github.com/scienceol/piwarmer/pkg/middleware/trace"
	"github.com/scienceol/piwarmer/pkg/utils"
	"github.com/scienceol/piwarmer/pkg/web"
	"github.com/spf13/cobra"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:          "webserver",
		Long:         "Start the program detail web server",
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         newRouter,
		PostRunE:     cleanWebResource,
	}
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:    fmt.Sprintf("%s-%s", conf.Server.Service, conf.Server.Platform),
		Version:        conf.Trace.Version,
		TraceEndpoint:  conf.Trace.TraceEndpoint,
		MetricEndpoint: conf.Trace.MetricEndpoint,
		Stdout:         conf.Trace.Stdout,
	})
	return nil
}

func newRouter(cmd *cobra.Command, _ []string) error {
	router := gin.Default()
	web.NewRouter(router)
	conf := config.Global()
	port := conf.Server.Port
	addr := ":" + strconv.Itoa(port)

	httpServer := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	logger.Infof(cmd.Context(), "web server listening on http://0.0.0.0:%d, backend %s", port, conf.Backend.Addr)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v", err)
		}
	}, func(err error) {
		logger.Fatalf(cmd.Context(), "run http server err: %+v", err)
	})

	<-cmd.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf(ctx, "shut down server err: %+v", err)
	}
	return nil
}

func cleanWebResource(_ *cobra.Command, _ []string) error {
	trace.CloseTrace()
	return nil
}
