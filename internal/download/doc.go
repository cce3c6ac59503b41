package download

// Package download implements the job runner that supervises the external yt-dlp
// binary. It turns job options into command lines, runs one child process per
// URL, streams combined output to a listener, derives progress from
// "[download] NN.N%" lines, and supports cooperative cancellation.
