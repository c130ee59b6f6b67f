// Package engine defines the contract between a conversion session and the
// document converter that does the actual work. The interfaces are small and
// backend-agnostic so converters can be backed by native libraries, WebAssembly
// builds, or remote services without leaking provider concerns into callers.
package engine
