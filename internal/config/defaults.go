package config

const (
	defaultLibraryDir     = "~/music/tunepull"
	defaultWorkDir        = "~/.local/share/tunepull/staging"
	defaultLogDir         = "~/.local/share/tunepull/logs"
	defaultConfidenceMin  = 0.6
	defaultSearchLimit    = 12
	defaultRateLimitMS    = 350
	defaultSearchBackend  = "ytmusic"
	defaultSearchLanguage = "en"
	defaultSearchTimeout  = 15
	defaultAudioFormat    = "m4a"
	defaultDownloadWait   = 600
	defaultYtDlpBinary    = "yt-dlp"
	defaultFFmpegBinary   = "ffmpeg"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			WorkDir:    defaultWorkDir,
			LogDir:     defaultLogDir,
		},
		Matching: Matching{
			ConfidenceMin: defaultConfidenceMin,
			SearchLimit:   defaultSearchLimit,
			RateLimitMS:   defaultRateLimitMS,
		},
		Search: Search{
			Backend:        defaultSearchBackend,
			Language:       defaultSearchLanguage,
			TimeoutSeconds: defaultSearchTimeout,
		},
		Download: Download{
			Format:         defaultAudioFormat,
			TimeoutSeconds: defaultDownloadWait,
			YtDlpBinary:    defaultYtDlpBinary,
			FFmpegBinary:   defaultFFmpegBinary,
			EmbedCoverArt:  true,
		},
		Playlist: Playlist{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
