// Package logger provides slog attribute helpers shared by the SDK packages
// and the habitctl command.
//
// Helpers follow the empty Attr pattern for nil safety: passing a nil error or
// empty string yields an attribute slog silently drops, so call sites never
// need explicit nil checks:
//
//	log.Info("session restored",
//		logger.Component("session"),
//		logger.Error(err),
//	)
package logger
