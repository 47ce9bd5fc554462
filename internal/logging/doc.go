// Package logging wires log/slog with a console handler for interactive use
// and a JSON handler for machine consumption. Components receive an injected
// *slog.Logger tagged via WithComponent; nothing in the repository logs
// through a process-wide singleton.
package logging
