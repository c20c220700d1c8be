// Package services defines the error taxonomy shared by external
// integrations (search backends, yt-dlp, ffmpeg) so callers can classify
// failures without knowing which client produced them.
package services
