// Package playlist writes extended M3U8 playlists pointing at downloaded
// library files so players can consume the library per source playlist.
package playlist
