package i18n

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashwch/assist/internal/appdirs"
)

// Catalog holds every user-visible dialog line. Command keyword stems are
// not part of it: they are fixed so the grammar is identical across locales.
type Catalog struct {
	Locale   string   `json:"locale"`
	Messages Messages `json:"messages"`
}

type Messages struct {
	BannerTitle    string   `json:"banner_title"`
	BannerCommands []string `json:"banner_commands"`

	CreateIntro    string `json:"create_intro"`
	AskName        string `json:"ask_name"`
	ConditionsAuto string `json:"conditions_auto"`
	ChooseAction   string `json:"choose_action"`
	RoutineCreated string `json:"routine_created"`

	AskStart       string `json:"ask_start"`
	RoutineStarted string `json:"routine_started"`
	AlreadyStarted string `json:"already_started"`
	RoutineFailed  string `json:"routine_failed"`

	ChooseRoutine  string `json:"choose_routine"`
	NoRoutines     string `json:"no_routines"`
	ConfirmRemove  string `json:"confirm_remove"`
	ConfirmYes     string `json:"confirm_yes"`
	ConfirmNo      string `json:"confirm_no"`
	RoutineRemoved string `json:"routine_removed"`

	ActionFlashlight string `json:"action_flashlight"`
	FlashlightOn     string `json:"flashlight_on"`
}

func LoadCatalog(requestedLocale string) Catalog {
	locale := NormalizeLocale(requestedLocale)
	if locale == "" {
		locale = DetectLocale()
	}
	if locale == "" {
		locale = "ru"
	}
	base := baseCatalogForLocale(locale)

	if override, ok := loadCommunityCatalog(locale); ok {
		merged := mergeCatalog(base, override)
		if strings.TrimSpace(override.Locale) != "" {
			merged.Locale = NormalizeLocale(override.Locale)
		} else {
			merged.Locale = locale
		}
		return merged
	}

	base.Locale = locale
	return base
}

func baseCatalogForLocale(locale string) Catalog {
	normalized := strings.ToLower(NormalizeLocale(locale))
	switch {
	case strings.HasPrefix(normalized, "en"):
		base := defaultEnglishCatalog()
		base.Locale = "en"
		return base
	default:
		base := defaultRussianCatalog()
		base.Locale = "ru"
		return base
	}
}

func DetectLocale() string {
	candidates := []string{
		os.Getenv("ASSIST_LOCALE"),
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		os.Getenv("LANG"),
	}
	for _, candidate := range candidates {
		if normalized := NormalizeLocale(candidate); normalized != "" {
			return normalized
		}
	}
	return "ru"
}

func NormalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.Split(trimmed, ".")[0]
	trimmed = strings.Split(trimmed, "@")[0]
	trimmed = strings.ReplaceAll(trimmed, "_", "-")

	parts := strings.Split(trimmed, "-")
	lang := strings.ToLower(parts[0])
	if !isValidLocaleToken(lang, true) {
		return ""
	}
	if len(parts) == 1 {
		return lang
	}
	region := strings.ToUpper(parts[1])
	if region == "" {
		return lang
	}
	if !isValidLocaleToken(strings.ToLower(region), false) {
		return ""
	}
	return lang + "-" + region
}

func isValidLocaleToken(token string, lettersOnly bool) bool {
	if len(token) < 2 || len(token) > 8 {
		return false
	}
	for _, r := range token {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if !lettersOnly && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func loadCommunityCatalog(locale string) (Catalog, bool) {
	configDir, err := appdirs.ConfigDir()
	if err != nil {
		return Catalog{}, false
	}

	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return Catalog{}, false
	}
	lang := normalized
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}

	paths := []string{
		filepath.Join(configDir, "locales", normalized+".json"),
	}
	if lang != normalized {
		paths = append(paths, filepath.Join(configDir, "locales", lang+".json"))
	}

	for _, path := range paths {
		if loaded, ok := loadCatalogFile(path); ok {
			return loaded, true
		}
	}
	return Catalog{}, false
}

func loadCatalogFile(path string) (Catalog, bool) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, false
	}
	var catalog Catalog
	if err := json.Unmarshal(bytes, &catalog); err != nil {
		return Catalog{}, false
	}
	return catalog, true
}

// mergeCatalog lets an override replace any non-blank line of the base.
func mergeCatalog(base Catalog, override Catalog) Catalog {
	merged := base
	b, o := &merged.Messages, override.Messages

	pick(&b.BannerTitle, o.BannerTitle)
	if len(nonBlank(o.BannerCommands)) > 0 {
		b.BannerCommands = nonBlank(o.BannerCommands)
	}
	pick(&b.CreateIntro, o.CreateIntro)
	pick(&b.AskName, o.AskName)
	pick(&b.ConditionsAuto, o.ConditionsAuto)
	pick(&b.ChooseAction, o.ChooseAction)
	pick(&b.RoutineCreated, o.RoutineCreated)
	pick(&b.AskStart, o.AskStart)
	pick(&b.RoutineStarted, o.RoutineStarted)
	pick(&b.AlreadyStarted, o.AlreadyStarted)
	pick(&b.RoutineFailed, o.RoutineFailed)
	pick(&b.ChooseRoutine, o.ChooseRoutine)
	pick(&b.NoRoutines, o.NoRoutines)
	pick(&b.ConfirmRemove, o.ConfirmRemove)
	pick(&b.ConfirmYes, o.ConfirmYes)
	pick(&b.ConfirmNo, o.ConfirmNo)
	pick(&b.RoutineRemoved, o.RoutineRemoved)
	pick(&b.ActionFlashlight, o.ActionFlashlight)
	pick(&b.FlashlightOn, o.FlashlightOn)
	return merged
}

func pick(target *string, override string) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		*target = trimmed
	}
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultRussianCatalog() Catalog {
	return Catalog{
		Locale: "ru",
		Messages: Messages{
			BannerTitle: "Список команд:",
			BannerCommands: []string{
				"Создать сценарий",
				"Запустить сценарий",
				"Удалить сценарий",
				"Список сценариев",
				"exit",
			},
			CreateIntro:      "Отлично, давайте создадим сценарий!",
			AskName:          "Введите название сценария",
			ConditionsAuto:   "Условия сценария установлены автоматически",
			ChooseAction:     "Выберите действие",
			RoutineCreated:   "Сценарий создан",
			AskStart:         "Какой сценарий запустить?",
			RoutineStarted:   "Пользовательский сценарий %s запущен",
			AlreadyStarted:   "Сценарий %s уже был запущен",
			RoutineFailed:    "Сценарий %s остановлен с ошибкой: %v",
			ChooseRoutine:    "Выберите сценарий",
			NoRoutines:       "Сценариев пока нет",
			ConfirmRemove:    "Удалить сценарий?",
			ConfirmYes:       "Да",
			ConfirmNo:        "Нет",
			RoutineRemoved:   "Сценарий удалён",
			ActionFlashlight: "Включить фонарик",
			FlashlightOn:     "Фонарик включен",
		},
	}
}

func defaultEnglishCatalog() Catalog {
	return Catalog{
		Locale: "en",
		Messages: Messages{
			BannerTitle: "Commands:",
			BannerCommands: []string{
				"Создать сценарий (create a routine)",
				"Запустить сценарий (run a routine)",
				"Удалить сценарий (remove a routine)",
				"Список сценариев (list routines)",
				"exit",
			},
			CreateIntro:      "Great, let's create a routine!",
			AskName:          "Enter the routine name",
			ConditionsAuto:   "Routine conditions were set automatically",
			ChooseAction:     "Choose an action",
			RoutineCreated:   "Routine created",
			AskStart:         "Which routine should run?",
			RoutineStarted:   "Routine %s started",
			AlreadyStarted:   "Routine %s has already been started",
			RoutineFailed:    "Routine %s stopped with an error: %v",
			ChooseRoutine:    "Choose a routine",
			NoRoutines:       "No routines yet",
			ConfirmRemove:    "Remove routine?",
			ConfirmYes:       "Yes",
			ConfirmNo:        "No",
			RoutineRemoved:   "Routine removed",
			ActionFlashlight: "Turn on the flashlight",
			FlashlightOn:     "Flashlight is on",
		},
	}
}
