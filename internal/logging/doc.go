// Package logging builds the zerolog loggers used across userdir.
//
// A logger is created once per command from a Config, tagged per component
// with ComponentLogger, and carried through context.Context. Every event
// logged with .Ctx(ctx) picks up the trace ID stored in that context.
package logging
