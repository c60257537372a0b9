package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reserved menu labels. They double as callback payloads and must not
// collide with question-answer text.
const (
	labelResults    = "Посмотреть результаты"
	labelBackToMenu = "Вернуться в меню выбора предметов"
	labelRetake     = "Перепройти тест"
)

// subjects is the fixed quiz vocabulary; the labels double as callback
// payloads.
var subjects = []string{"Математика", "Физика", "Химия", "История"}

func isSubject(label string) bool {
	for _, s := range subjects {
		if s == label {
			return true
		}
	}
	return false
}

func btn(label string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, label)
}

// subjectMenu builds the subject selection keyboard.
func subjectMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn(subjects[0]), btn(subjects[1])),
		tgbotapi.NewInlineKeyboardRow(btn(subjects[2]), btn(subjects[3])),
		tgbotapi.NewInlineKeyboardRow(btn(labelResults)),
	)
}

// postQuizMenu builds the keyboard shown after a quiz completes.
func postQuizMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn(labelBackToMenu), btn(labelRetake)),
		tgbotapi.NewInlineKeyboardRow(btn(labelResults)),
	)
}

// answerKeyboard builds one button per shuffled answer option.
func answerKeyboard(options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, option := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(option)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
