package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconError    = "❌"
)

// Log view limits
const (
	LogMaxBytes     = 256 * 1024
	LogErrorPrefix  = "ERROR: "
	LogMinRows      = 12
	BatchMinRows    = 6
	ProgressMaximum = 100
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 360
)

// Background operation timeouts
const (
	DependencyCheckTimeout = 15 * time.Second
	ExpandTimeout          = 2 * time.Minute
)
