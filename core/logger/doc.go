// Package logger provides slog attribute helpers shared across the library.
// Helpers return empty attributes for nil inputs, making zero values safe to
// log unconditionally.
package logger
