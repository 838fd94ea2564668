// Package httpserver runs an http.Server with graceful shutdown.
//
// Run listens first, so a bad address fails immediately with ErrStart, and
// then serves until the context is done or Shutdown is called. In-flight
// requests get WithShutdownTimeout to finish. Signal handling is left to the
// caller, typically through signal.NotifyContext.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, api.Handler()); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
