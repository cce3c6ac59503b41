package ui

// Package ui contains the Fyne-based desktop front-end. It collects job options
// and URLs, hands jobs to a download.JobRunner and renders the runner's output,
// progress and outcome. All UI strings are localized via Localization.
