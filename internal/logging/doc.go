// Package logging constructs the application's slog loggers and provides
// attribute helpers shared across packages. Two output formats exist: a
// console format for interactive use and JSON for log files and scripting.
package logging
