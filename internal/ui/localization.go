package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyTools           = "tools"
	KeyToolMenuItem    = "tool_menu_item"
	KeyGuide           = "guide"
	KeySaveFolder      = "save_folder"
	KeySelectFolder    = "select_folder"
	KeyImageURL        = "image_url"
	KeyEnterURL        = "enter_url"
	KeyDownloadImport  = "download_import"
	KeyProgressFormat  = "progress_format"
	KeySavedImages     = "saved_images"
	KeyNoSavedImages   = "no_saved_images"
	KeyShowWindow      = "show_window"
	KeyErrorListFolder = "error_list_folder"
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

// SetLanguage sets the current language; "system" picks the OS locale.
// Unknown languages keep the current one.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
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

	if text, found := l.texts["en"][key]; found {
		return text
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

// systemLanguage returns the two-letter code of the OS locale, e.g. "pt" for "pt-BR"
func systemLanguage() string {
	code := lang.SystemLocale().LanguageString()
	if i := strings.IndexAny(code, "-_"); i != -1 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "Image Downloader",
		KeyTools:           "Tools",
		KeyToolMenuItem:    "Image Downloader & Compressor",
		KeyGuide:           "Download an image from any URL and save it as JPEG (quality 70%) into the selected folder.",
		KeySaveFolder:      "Save Folder:",
		KeySelectFolder:    "Select Folder",
		KeyImageURL:        "Image URL:",
		KeyEnterURL:        "https://example.com/image.png",
		KeyDownloadImport:  "Download & Import",
		KeyProgressFormat:  "Progress: %d%%",
		KeySavedImages:     "Saved images",
		KeyNoSavedImages:   "No images yet",
		KeyShowWindow:      "Show",
		KeyErrorListFolder: "Cannot list folder",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "Загрузчик изображений",
		KeyTools:           "Инструменты",
		KeyToolMenuItem:    "Загрузка и сжатие изображений",
		KeyGuide:           "Скачайте изображение по любой ссылке и сохраните его в JPEG (качество 70%) в выбранную папку.",
		KeySaveFolder:      "Папка:",
		KeySelectFolder:    "Выбрать папку",
		KeyImageURL:        "URL изображения:",
		KeyDownloadImport:  "Скачать и импортировать",
		KeyProgressFormat:  "Прогресс: %d%%",
		KeySavedImages:     "Сохранённые изображения",
		KeyNoSavedImages:   "Пока пусто",
		KeyShowWindow:      "Показать",
		KeyErrorListFolder: "Не удалось прочитать папку",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:        "Baixador de Imagens",
		KeyTools:           "Ferramentas",
		KeyToolMenuItem:    "Baixar e Comprimir Imagens",
		KeyGuide:           "Baixe uma imagem de qualquer URL e salve-a como JPEG (qualidade 70%) na pasta selecionada.",
		KeySaveFolder:      "Pasta:",
		KeySelectFolder:    "Selecionar Pasta",
		KeyImageURL:        "URL da imagem:",
		KeyDownloadImport:  "Baixar e Importar",
		KeyProgressFormat:  "Progresso: %d%%",
		KeySavedImages:     "Imagens salvas",
		KeyNoSavedImages:   "Nenhuma imagem ainda",
		KeyShowWindow:      "Mostrar",
		KeyErrorListFolder: "Não foi possível listar a pasta",
	}
}
