// Package session implements the conversion facade: one Session owns an
// engine.Converter, a mutable settings record, and the initialized flag that
// gates every operation. The original interface this models was a single
// process-wide handle; here each Session is independent so callers can run
// several lifecycles side by side and tests can construct throwaway sessions.
package session
