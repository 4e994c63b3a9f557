// Package logger builds slog loggers for the formkit binaries.
//
// New returns a *slog.Logger writing JSON (default) or text records. Context
// extractors registered with WithContextExtractors or WithContextValue add
// request scoped attributes, such as the request id, at log time:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithService("formkitd"),
//		logger.WithContextExtractors(requestIDExtractor),
//	)
//	log.InfoContext(ctx, "form validated", logger.Form("signup"))
//
// The attribute helpers keep key names consistent across packages.
package logger
