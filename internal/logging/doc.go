// Package logging provides structured logging for the picker tools.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used across the module: picker session events, server
// connections, and protocol messages.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (session writes, recomputes, payloads)
//   - Info: Normal operations (connections, server start/stop)
//   - Warn: Non-fatal issues (writes to closed sessions, bad requests)
//   - Error: Fatal issues (startup failures, write errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Session opened",
//	    zap.String("session_id", id),
//	    zap.String("remote_addr", "192.168.1.100"),
//	)
//
// Domain helpers:
//
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogSessionEvent(sessionID, "search", zap.String("text", text))
//	logging.LogMessage(remoteAddr, "received", "toggle", payload)
//
// # Configuration
//
// Logging is silent unless a level is given explicitly or through the
// PICKER_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Output goes to stderr by default. The interactive picker owns the terminal,
// so the CLI redirects logs to a file (--log-file) when running it.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
