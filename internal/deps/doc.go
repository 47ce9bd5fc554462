// Package deps verifies the external binaries a run depends on. Verification
// happens once at startup so a missing tool aborts before any file is touched.
package deps
