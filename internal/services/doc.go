// Package services defines the shared failure taxonomy for external tool
// invocations and the clients that wrap those tools.
//
// Every per-file failure in the pipeline is tagged with one of the sentinel
// errors here so the batch scheduler can classify outcomes without string
// matching. Run-level sentinels (ErrMissingDependency, ErrDiscovery) abort
// the run before any file is touched; everything else is confined to the
// file that raised it.
package services
