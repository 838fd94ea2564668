// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers that keep key names consistent across the
// engine, the registry and the HTTP service.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which adds attributes extracted from the
// context of each record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "schemakit"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.WarnContext(ctx, "async validator failed",
//	    logger.Schema("signup"), logger.Path("username"), logger.Error(err))
//
// Discard returns a logger that drops everything; it is the default for
// library code that was not handed a logger.
package logger
