package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
)

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeyStop               = "stop"
	KeyOpenFolder         = "open_folder"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyTabSingle          = "tab_single"
	KeyTabBatch           = "tab_batch"
	KeyTabAbout           = "tab_about"
	KeyURL                = "url"
	KeyEnterURL           = "enter_url"
	KeyBatchHint          = "batch_hint"
	KeyQuality            = "quality"
	KeyOutputFormat       = "output_format"
	KeyDownloadDirectory  = "download_directory"
	KeyBrowse             = "browse"
	KeyDownloadPlaylist   = "download_playlist"
	KeySubtitles          = "subtitles"
	KeyEmbedSubtitles     = "embed_subtitles"
	KeySubtitleLangs      = "subtitle_languages"
	KeyThumbnail          = "thumbnail"
	KeyEmbedThumbnail     = "embed_thumbnail"
	KeyKeepOriginal       = "keep_original"
	KeyPreferFreeFormats  = "prefer_free_formats"
	KeyLoadList           = "load_list"
	KeySaveList           = "save_list"
	KeyClearList          = "clear_list"
	KeyExpandPlaylists    = "expand_playlists"
	KeyExpanding          = "expanding"
	KeyExpandFailed       = "expand_failed"
	KeyListLoaded         = "list_loaded"
	KeyListSaved          = "list_saved"
	KeyYTDLPPath          = "ytdlp_path"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeySettingsSaved      = "settings_saved"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyJobRunning         = "job_running"
	KeyConfirmStop        = "confirm_stop"
	KeyConfirmStopMessage = "confirm_stop_message"
	KeyConfirmExit        = "confirm_exit"
	KeyStoppingDownload   = "stopping_download"
	KeyReady              = "ready"
	KeyProgressStatus     = "progress_status"
	KeyFinishedStatus     = "finished_status"
	KeyMissingTools       = "missing_tools"
	KeyCheckingTools      = "checking_tools"
	KeyAboutText          = "about_text"
	KeyError              = "error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		// Use system locale - simplified to English for now
		lang = LangEnglish
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts[LangEnglish][key]; found {
		return text
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangRussian: "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:           "yt-dlp GUI",
		KeyDownload:           "Download",
		KeyStop:               "Stop",
		KeyOpenFolder:         "Open Folder",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyTabSingle:          "Single",
		KeyTabBatch:           "Batch",
		KeyTabAbout:           "About",
		KeyURL:                "URL:",
		KeyEnterURL:           "Video or playlist URL (https://...)",
		KeyBatchHint:          "One URL per line, lines starting with # are ignored",
		KeyQuality:            "Quality:",
		KeyOutputFormat:       "Format:",
		KeyDownloadDirectory:  "Save to:",
		KeyBrowse:             "Browse",
		KeyDownloadPlaylist:   "Download playlist",
		KeySubtitles:          "Subtitles",
		KeyEmbedSubtitles:     "Embed subtitles",
		KeySubtitleLangs:      "Subtitle languages:",
		KeyThumbnail:          "Thumbnail",
		KeyEmbedThumbnail:     "Embed thumbnail",
		KeyKeepOriginal:       "Keep original file",
		KeyPreferFreeFormats:  "Prefer free formats",
		KeyLoadList:           "Load...",
		KeySaveList:           "Save...",
		KeyClearList:          "Clear",
		KeyExpandPlaylists:    "Expand playlists",
		KeyExpanding:          "Expanding playlists...",
		KeyExpandFailed:       "Playlist expansion failed",
		KeyListLoaded:         "Loaded %d URL(s) from %s",
		KeyListSaved:          "Saved %d URL(s) to %s",
		KeyYTDLPPath:          "yt-dlp executable:",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyPleaseEnterURL:     "Please enter at least one URL",
		KeyJobRunning:         "A download is already running",
		KeyConfirmStop:        "Stop download",
		KeyConfirmStopMessage: "Stop the current download?",
		KeyConfirmExit:        "A download is in progress. Stop it and exit?",
		KeyStoppingDownload:   "Stopping download...",
		KeyReady:              "Ready",
		KeyProgressStatus:     "Downloading %d/%d: %d%%",
		KeyFinishedStatus:     "%s: %d completed, %d failed",
		KeyMissingTools:       "Missing dependencies",
		KeyCheckingTools:      "Checking dependencies...",
		KeyAboutText:          "Desktop front-end for yt-dlp.\nDownloading and conversion are performed by yt-dlp and ffmpeg.",
		KeyError:              "Error",
	}

	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:           "yt-dlp GUI",
		KeyDownload:           "Скачать",
		KeyStop:               "Стоп",
		KeyOpenFolder:         "Открыть папку",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyTabSingle:          "Одно видео",
		KeyTabBatch:           "Список",
		KeyTabAbout:           "О программе",
		KeyURL:                "URL:",
		KeyEnterURL:           "URL видео или плейлиста (https://...)",
		KeyBatchHint:          "Один URL на строку, строки с # игнорируются",
		KeyQuality:            "Качество:",
		KeyOutputFormat:       "Формат:",
		KeyDownloadDirectory:  "Сохранить в:",
		KeyBrowse:             "Обзор",
		KeyDownloadPlaylist:   "Скачать плейлист",
		KeySubtitles:          "Субтитры",
		KeyEmbedSubtitles:     "Встроить субтитры",
		KeySubtitleLangs:      "Языки субтитров:",
		KeyThumbnail:          "Обложка",
		KeyEmbedThumbnail:     "Встроить обложку",
		KeyKeepOriginal:       "Сохранить исходный файл",
		KeyPreferFreeFormats:  "Предпочитать свободные форматы",
		KeyLoadList:           "Загрузить...",
		KeySaveList:           "Сохранить...",
		KeyClearList:          "Очистить",
		KeyExpandPlaylists:    "Развернуть плейлисты",
		KeyExpanding:          "Разворачиваем плейлисты...",
		KeyExpandFailed:       "Не удалось развернуть плейлист",
		KeyListLoaded:         "Загружено URL: %d из %s",
		KeyListSaved:          "Сохранено URL: %d в %s",
		KeyYTDLPPath:          "Исполняемый файл yt-dlp:",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyPleaseEnterURL:     "Введите хотя бы один URL",
		KeyJobRunning:         "Загрузка уже выполняется",
		KeyConfirmStop:        "Остановить загрузку",
		KeyConfirmStopMessage: "Остановить текущую загрузку?",
		KeyConfirmExit:        "Идёт загрузка. Остановить и выйти?",
		KeyStoppingDownload:   "Остановка загрузки...",
		KeyReady:              "Готово",
		KeyProgressStatus:     "Загрузка %d/%d: %d%%",
		KeyFinishedStatus:     "%s: завершено %d, ошибок %d",
		KeyMissingTools:       "Отсутствуют зависимости",
		KeyCheckingTools:      "Проверка зависимостей...",
		KeyAboutText:          "Графическая оболочка для yt-dlp.\nЗагрузку и конвертацию выполняют yt-dlp и ffmpeg.",
		KeyError:              "Ошибка",
	}
}
