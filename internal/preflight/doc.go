// Package preflight provides readiness checks for the binaries, directories,
// and network endpoints tunepull depends on.
//
// The sync command runs RunAll before touching the library so a missing
// yt-dlp or an unwritable library directory fails fast instead of midway
// through a batch. The status command uses the same checks for display.
package preflight
