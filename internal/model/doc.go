package model

// Package model defines domain data structures shared by the runner and the UI:
// job options, job requests, execution state, and status enums. Option values
// are plain strings so they can be bound directly to selectors and stored in
// preferences.
