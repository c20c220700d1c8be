// Package ytdlp wraps the yt-dlp command line tool for music search and
// audio downloads. It doubles as a fallback search backend when the
// InnerTube endpoint is unreachable and as the download engine for matched
// tracks.
package ytdlp
