// Package download turns a matched track into a tagged audio file in the
// library. It drives yt-dlp for the raw stream, ffmpeg for remux, transcode,
// and tagging, and fetches best-effort cover art from YouTube thumbnails.
package download
