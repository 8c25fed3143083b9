package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAdd               = "add"
	KeyAddMany           = "add_many"
	KeyAddManyHint       = "add_many_hint"
	KeyImportPlaylist    = "import_playlist"
	KeyPause             = "pause"
	KeyResume            = "resume"
	KeyCancelCurrent     = "cancel_current"
	KeyShowSpeed         = "show_speed"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyOpenFolder        = "open_folder"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyTaskAdded         = "task_added"
	KeyTasksAdded        = "tasks_added"
	KeyPending           = "pending"
	KeyCompleted         = "completed"
	KeyIdle              = "idle"
	KeyPaused            = "paused"
	KeyQueueSize         = "queue_size"
	KeyLoadingPlaylist   = "loading_playlist"
	KeyPlaylistFailed    = "playlist_failed"
	KeySelectAll         = "select_all"
	KeySelectNone        = "select_none"
	KeyStats             = "stats"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
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

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Queue",
		KeyAdd:               "Add",
		KeyAddMany:           "Add multiple",
		KeyAddManyHint:       "One URL per line, # starts a comment",
		KeyImportPlaylist:    "Import playlist",
		KeyPause:             "Pause",
		KeyResume:            "Resume",
		KeyCancelCurrent:     "Cancel current",
		KeyShowSpeed:         "Show speed",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyOpenFolder:        "Open folder",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter video or playlist URL",
		KeySettingsSaved:     "Settings saved",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyTaskAdded:         "Added to queue",
		KeyTasksAdded:        "Added %d URLs to queue",
		KeyPending:           "Pending",
		KeyCompleted:         "Completed",
		KeyIdle:              "Idle",
		KeyPaused:            "Paused",
		KeyQueueSize:         "Queue: %d",
		KeyLoadingPlaylist:   "Loading playlist...",
		KeyPlaylistFailed:    "Could not load playlist",
		KeySelectAll:         "All",
		KeySelectNone:        "None",
		KeyStats:             "Done %d · Failed %d · Cancelled %d",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Очередь",
		KeyAdd:               "Добавить",
		KeyAddMany:           "Добавить список",
		KeyAddManyHint:       "По одному URL в строке, # начинает комментарий",
		KeyImportPlaylist:    "Импорт плейлиста",
		KeyPause:             "Пауза",
		KeyResume:            "Продолжить",
		KeyCancelCurrent:     "Отменить текущую",
		KeyShowSpeed:         "Показывать скорость",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyOpenFolder:        "Открыть папку",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL видео или плейлиста",
		KeySettingsSaved:     "Настройки сохранены",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyTaskAdded:         "Добавлено в очередь",
		KeyTasksAdded:        "Добавлено URL: %d",
		KeyPending:           "В очереди",
		KeyCompleted:         "Завершено",
		KeyIdle:              "Ожидание",
		KeyPaused:            "Пауза",
		KeyQueueSize:         "Очередь: %d",
		KeyLoadingPlaylist:   "Загрузка плейлиста...",
		KeyPlaylistFailed:    "Не удалось загрузить плейлист",
		KeySelectAll:         "Все",
		KeySelectNone:        "Ничего",
		KeyStats:             "Готово %d · Ошибки %d · Отменено %d",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Fila",
		KeyAdd:               "Adicionar",
		KeyAddMany:           "Adicionar vários",
		KeyAddManyHint:       "Uma URL por linha, # inicia um comentário",
		KeyImportPlaylist:    "Importar playlist",
		KeyPause:             "Pausar",
		KeyResume:            "Retomar",
		KeyCancelCurrent:     "Cancelar atual",
		KeyShowSpeed:         "Mostrar velocidade",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyOpenFolder:        "Abrir pasta",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Digite a URL do vídeo ou playlist",
		KeySettingsSaved:     "Configurações salvas",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyTaskAdded:         "Adicionado à fila",
		KeyTasksAdded:        "%d URLs adicionadas à fila",
		KeyPending:           "Pendentes",
		KeyCompleted:         "Concluídos",
		KeyIdle:              "Ocioso",
		KeyPaused:            "Pausado",
		KeyQueueSize:         "Fila: %d",
		KeyLoadingPlaylist:   "Carregando playlist...",
		KeyPlaylistFailed:    "Não foi possível carregar a playlist",
		KeySelectAll:         "Todos",
		KeySelectNone:        "Nenhum",
		KeyStats:             "Concluídos %d · Falhas %d · Cancelados %d",
	}
}
