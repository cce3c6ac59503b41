package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/platform"
	"github.com/ytget/ytdlp-gui/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID = "com.ytget.ytdlp-gui"

	WindowWidth  = 900
	WindowHeight = 680
)

func main() {
	log.Printf("yt-dlp GUI v%s starting...", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow("")
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	runner := download.NewRunner()
	root := ui.NewRootUI(myWindow, myApp, runner, platform.NewPlaylistExpander(), version)

	// probe yt-dlp and ffmpeg once the window is up
	myApp.Lifecycle().SetOnStarted(root.CheckDependencies)

	myWindow.ShowAndRun()
}
