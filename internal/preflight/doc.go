// Package preflight provides readiness checks for the tools and paths a
// transcription run depends on.
//
// These checks run in two contexts:
//   - `vidsub run` calls RunAll and CheckSystemDeps before touching any
//     video; a missing required tool is a setup failure.
//   - `vidsub status` renders every check for display.
package preflight
