// Package i18n holds the user-facing strings in every supported language.
package i18n

import "github.com/set-night/sofia/internal/domain"

type Strings struct {
	Header           string
	Welcome          string
	WhatICanDo       string
	Capabilities     []string
	Summarizing      string
	Answer           string
	Listen           string
	Sources          string
	LegalNotice      string
	Consultation     string
	VoicePlaceholder string

	// Bot only
	Busy             string
	PlaybackBusy     string
	FileAttached     string
	FileDetached     string
	NothingToSend    string
	ChooseLanguage   string
	LanguageSwitched string
	SessionEnded     string
	NoSession        string
	UsageSummary     string
	VoiceFailed      string
	AttachmentTooBig string
	RateLimited      string
}

var translations = map[domain.Language]*Strings{
	domain.LanguagePL: {
		Header:     "Twój Wirtualny Asystent",
		Welcome:    "Cześć! Nazywam się Sofia. Jak mogę Ci pomóc?",
		WhatICanDo: "Co ja umiem?",
		Capabilities: []string{
			"Wyszukiwanie odpowiedzi w polskim ustawodawstwie (księgowość/podatki/kadry)",
			"Odpowiedzi biznesowe związane z prowadzeniem działalności w Polsce",
			"Streszczanie dokumentów: 'o co chodzi' + 'co trzeba zrobić'",
		},
		Summarizing:      "Analizuję...",
		Answer:           "Odpowiedź",
		Listen:           "Odtwórz odpowiedź",
		Sources:          "Źródła",
		LegalNotice:      "Wskazówka: Moje odpowiedzi opierają się na polskim prawie. Zawsze podaję podstawę prawną, jeśli jest dostępna.",
		Consultation:     "To jest informacja ogólna. W celu uzyskania wiążącej opinii zalecam konsultację ze specjalistą.",
		VoicePlaceholder: "[Nagranie głosowe]",

		Busy:             "Poczekaj, wciąż przygotowuję poprzednią odpowiedź.",
		PlaybackBusy:     "Poczekaj, przygotowuję już nagranie.",
		FileAttached:     "Plik %s został dołączony. Napisz pytanie albo wyślij /send, aby go przeanalizować.",
		FileDetached:     "Załącznik został usunięty.",
		NothingToSend:    "Nie ma nic do wysłania. Wpisz pytanie lub dołącz plik.",
		ChooseLanguage:   "Wybierz język odpowiedzi:",
		LanguageSwitched: "Język odpowiedzi: polski.",
		SessionEnded:     "Rozmowa zakończona. Napisz, aby zacząć nową.",
		NoSession:        "Nie ma aktywnej rozmowy.",
		UsageSummary:     "Zapytania: %d\nTokeny wejściowe: %d\nTokeny wyjściowe: %d\nSzacowany koszt: $%s",
		VoiceFailed:      "Nie udało się pobrać nagrania.",
		AttachmentTooBig: "Plik jest za duży.",
		RateLimited:      "Za dużo wiadomości. Spróbuj ponownie za minutę.",
	},
	domain.LanguageRU: {
		Header:     "Ваш виртуальный помощник",
		Welcome:    "Здравствуйте! Меня зовут София. Чем могу помочь?",
		WhatICanDo: "Что я умею?",
		Capabilities: []string{
			"Поиск ответов в польском законодательстве (бухгалтерия/налоги/кадры)",
			"Бизнес-консультации по ведению деятельности в Польше",
			"Краткий обзор документов: «о чем речь» + «что нужно сделать»",
		},
		Summarizing:      "Анализирую...",
		Answer:           "Ответ",
		Listen:           "Прослушать ответ",
		Sources:          "Источники",
		LegalNotice:      "Примечание: Мои ответы основаны на польском праве. Я всегда указываю правовую основу, если она доступна.",
		Consultation:     "Это общая информация. Для получения официального заключения рекомендую проконсультироваться со специалистом.",
		VoicePlaceholder: "[Голосовое сообщение]",

		Busy:             "Подождите, я ещё готовлю предыдущий ответ.",
		PlaybackBusy:     "Подождите, запись уже готовится.",
		FileAttached:     "Файл %s прикреплён. Напишите вопрос или отправьте /send, чтобы его проанализировать.",
		FileDetached:     "Вложение удалено.",
		NothingToSend:    "Нечего отправлять. Введите вопрос или прикрепите файл.",
		ChooseLanguage:   "Выберите язык ответов:",
		LanguageSwitched: "Язык ответов: русский.",
		SessionEnded:     "Разговор завершён. Напишите, чтобы начать новый.",
		NoSession:        "Нет активного разговора.",
		UsageSummary:     "Запросов: %d\nВходящих токенов: %d\nИсходящих токенов: %d\nОценочная стоимость: $%s",
		VoiceFailed:      "Не удалось загрузить запись.",
		AttachmentTooBig: "Файл слишком большой.",
		RateLimited:      "Слишком много сообщений. Попробуйте через минуту.",
	},
}

// For returns the strings of lang, falling back to Polish.
func For(lang domain.Language) *Strings {
	if s, ok := translations[lang]; ok {
		return s
	}
	return translations[domain.LanguagePL]
}

// LanguageLabel is the button caption of a language in its own script.
func LanguageLabel(lang domain.Language) string {
	switch lang {
	case domain.LanguageRU:
		return "🇷🇺 Русский"
	default:
		return "🇵🇱 Polski"
	}
}
