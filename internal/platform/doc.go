package platform

// Package platform contains OS/platform integration and external tooling glue:
// dependency checks for yt-dlp and ffmpeg, batch URL list files, playlist
// expansion, filesystem helpers, and opening folders in the file manager.
