// Package platform contains OS and external tooling glue: the yt-dlp
// downloader adapter, playlist listing, download directory helpers and the
// per-directory instance lock.
package platform
