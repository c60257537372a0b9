// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
)

const (
	msgWelcome        = "Добро пожаловать! Выберите предмет для викторины:"
	msgChooseSubject  = "Выберите предмет для викторины:"
	msgUnknownCommand = "Неизвестная команда. Пожалуйста, используйте /start для начала."
	msgCorrect        = "Правильно! 🎉"
	msgNoResults      = "У вас нет результатов."
	msgInternalError  = "Что-то пошло не так. Попробуйте позже."
)

func formatIncorrect(correctAnswer string) string {
	return fmt.Sprintf("Неправильно. Правильный ответ: %s.", correctAnswer)
}

func formatFinished(score int) string {
	return fmt.Sprintf("Викторина окончена! Ваш результат: %d баллов.\nВыберите действие:", score)
}

// formatScoreHistory renders the fixed-width results table, newest first.
func formatScoreHistory(records []*entities.ScoreRecord) string {
	var sb strings.Builder

	sb.WriteString("Ваши результаты:\n\n")
	sb.WriteString(fmt.Sprintf("%-15s %-15s %-10s\n", "Дата", "Предмет", "Баллы"))

	for _, rec := range records {
		sb.WriteString(fmt.Sprintf(
			"%-15s %-15s %-10d\n",
			rec.CreatedAt.Format("02.01.2006"),
			rec.Subject,
			rec.Score,
		))
	}

	sb.WriteString("\nВыберите действие:")
	return sb.String()
}
