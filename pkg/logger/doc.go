// Package logger builds the slog loggers used across seedkit.
//
// New creates a *slog.Logger from functional options: output format (text or
// JSON), level, static attributes and context extractors. Records go to
// stderr by default so that stdout stays free for generated records.
//
// Helpers in attr.go (RunID, Field, Template, Pool, Count, Error, ...) keep
// attribute keys consistent between packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.Env), "seedkit"),
//	    logger.WithContextExtractors(runIDFromContext),
//	)
//	log.InfoContext(ctx, "batch generated", logger.Count(n), logger.Duration(d))
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
