package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/exahelper/exam-quiz-bot/internal/domain/entities"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres/repository"
	"github.com/exahelper/exam-quiz-bot/internal/service"
	"github.com/exahelper/exam-quiz-bot/internal/storage"
)

type fakeQuestionRepo struct {
	bySubject map[string][]*entities.Question
}

func (f *fakeQuestionRepo) Get(_ context.Context, subject string, position int) (*entities.Question, error) {
	questions := f.bySubject[subject]
	if position >= len(questions) {
		return nil, repository.ErrQuestionNotFound
	}
	return questions[position], nil
}

type fakeLedger struct {
	records   []*entities.ScoreRecord
	appendErr error
}

func (f *fakeLedger) Append(_ context.Context, rec *entities.ScoreRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeLedger) ListByUser(_ context.Context, userID int64) ([]*entities.ScoreRecord, error) {
	var out []*entities.ScoreRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func question(subject string, pos int, text, correct string) *entities.Question {
	return &entities.Question{
		Subject:       subject,
		Position:      pos,
		Text:          text,
		CorrectAnswer: correct,
		Distractors:   []string{"вариант А", "вариант Б", "вариант В"},
	}
}

func newTestService(repo *fakeQuestionRepo, ledger *fakeLedger) (*service.QuizService, *storage.SessionStore) {
	sessions := storage.NewSessionStore()
	return service.NewQuizService(sessions, repo, ledger, zap.NewNop()), sessions
}

func TestStartServesFirstQuestion(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQuestionRepo{bySubject: map[string][]*entities.Question{
		"Физика": {
			question("Физика", 0, "Первый вопрос?", "ответ 1"),
			question("Физика", 1, "Второй вопрос?", "ответ 2"),
		},
	}}
	svc, sessions := newTestService(repo, &fakeLedger{})

	step, err := svc.Start(ctx, 42, "Физика")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if step.Finished != nil {
		t.Fatalf("expected a question, got completion")
	}
	if step.Question != "Первый вопрос?" {
		t.Fatalf("unexpected question text: %q", step.Question)
	}
	if len(step.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(step.Options))
	}
	if !containsOption(step.Options, "ответ 1") {
		t.Fatalf("options %v missing the correct answer", step.Options)
	}

	sess, ok, _ := sessions.Get(ctx, 42)
	if !ok {
		t.Fatalf("expected session present")
	}
	if sess.NextIndex != 1 {
		t.Fatalf("expected next index 1, got %d", sess.NextIndex)
	}
	if sess.Score != 0 {
		t.Fatalf("expected zero score, got %d", sess.Score)
	}
	if sess.PendingAnswer != "ответ 1" {
		t.Fatalf("expected pending answer snapshot, got %q", sess.PendingAnswer)
	}
}

func TestTwoQuestionQuizOneCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQuestionRepo{bySubject: map[string][]*entities.Question{
		"Математика": {
			question("Математика", 0, "2+2?", "4"),
			question("Математика", 1, "3*3?", "9"),
		},
	}}
	ledger := &fakeLedger{}
	svc, sessions := newTestService(repo, ledger)

	if _, err := svc.Start(ctx, 42, "Математика"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	feedback, err := svc.Answer(ctx, 42, "4")
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if !feedback.Correct {
		t.Fatalf("expected correct grading")
	}
	if feedback.Next.Finished != nil {
		t.Fatalf("expected a second question")
	}

	sess, _, _ := sessions.Get(ctx, 42)
	if sess.NextIndex != 2 || sess.Score != 1 {
		t.Fatalf("expected index 2 score 1, got index %d score %d", sess.NextIndex, sess.Score)
	}

	feedback, err = svc.Answer(ctx, 42, "8")
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if feedback.Correct {
		t.Fatalf("expected incorrect grading")
	}
	if feedback.CorrectAnswer != "9" {
		t.Fatalf("expected correct answer 9, got %q", feedback.CorrectAnswer)
	}
	if feedback.Next.Finished == nil {
		t.Fatalf("expected completion after last question")
	}
	if feedback.Next.Finished.Score != 1 {
		t.Fatalf("expected final score 1, got %d", feedback.Next.Finished.Score)
	}

	if len(ledger.records) != 1 {
		t.Fatalf("expected exactly one score record, got %d", len(ledger.records))
	}
	rec := ledger.records[0]
	if rec.UserID != 42 || rec.Subject != "Математика" || rec.Score != 1 {
		t.Fatalf("unexpected score record: %+v", rec)
	}

	if _, ok, _ := sessions.Get(ctx, 42); ok {
		t.Fatalf("expected session destroyed after completion")
	}
}

func TestEmptySubjectCompletesImmediately(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	svc, sessions := newTestService(&fakeQuestionRepo{bySubject: map[string][]*entities.Question{}}, ledger)

	step, err := svc.Start(ctx, 42, "История")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if step.Finished == nil {
		t.Fatalf("expected immediate completion")
	}
	if step.Finished.Score != 0 {
		t.Fatalf("expected zero score, got %d", step.Finished.Score)
	}
	if len(ledger.records) != 1 || ledger.records[0].Score != 0 {
		t.Fatalf("expected one zero-score record, got %+v", ledger.records)
	}
	if _, ok, _ := sessions.Get(ctx, 42); ok {
		t.Fatalf("expected no session")
	}
}

func TestAnswerWithoutSession(t *testing.T) {
	svc, _ := newTestService(&fakeQuestionRepo{}, &fakeLedger{})

	_, err := svc.Answer(context.Background(), 42, "4")
	if !errors.Is(err, service.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestRetakeResetsProgress(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQuestionRepo{bySubject: map[string][]*entities.Question{
		"Химия": {
			question("Химия", 0, "H2O?", "вода"),
			question("Химия", 1, "NaCl?", "соль"),
		},
	}}
	svc, sessions := newTestService(repo, &fakeLedger{})

	if _, err := svc.Start(ctx, 42, "Химия"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.Answer(ctx, 42, "вода"); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	step, err := svc.Retake(ctx, 42)
	if err != nil {
		t.Fatalf("retake failed: %v", err)
	}
	if step.Question != "H2O?" {
		t.Fatalf("expected first question again, got %q", step.Question)
	}

	sess, _, _ := sessions.Get(ctx, 42)
	if sess.NextIndex != 1 || sess.Score != 0 {
		t.Fatalf("expected reset session, got index %d score %d", sess.NextIndex, sess.Score)
	}
}

func TestRetakeWithoutSession(t *testing.T) {
	svc, _ := newTestService(&fakeQuestionRepo{}, &fakeLedger{})

	_, err := svc.Retake(context.Background(), 42)
	if !errors.Is(err, service.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestAbandonRemovesSession(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQuestionRepo{bySubject: map[string][]*entities.Question{
		"Физика": {question("Физика", 0, "Вопрос?", "ответ")},
	}}
	svc, sessions := newTestService(repo, &fakeLedger{})

	if _, err := svc.Start(ctx, 42, "Физика"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Abandon(ctx, 42); err != nil {
		t.Fatalf("abandon failed: %v", err)
	}
	if _, ok, _ := sessions.Get(ctx, 42); ok {
		t.Fatalf("expected session removed")
	}

	if err := svc.Abandon(ctx, 42); !errors.Is(err, service.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestLedgerFailureStillCompletes(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQuestionRepo{bySubject: map[string][]*entities.Question{
		"Физика": {question("Физика", 0, "Вопрос?", "ответ")},
	}}
	ledger := &fakeLedger{appendErr: errors.New("db down")}
	svc, sessions := newTestService(repo, ledger)

	if _, err := svc.Start(ctx, 42, "Физика"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	feedback, err := svc.Answer(ctx, 42, "ответ")
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if feedback.Next.Finished == nil {
		t.Fatalf("expected completion despite ledger failure")
	}
	if _, ok, _ := sessions.Get(ctx, 42); ok {
		t.Fatalf("expected session destroyed despite ledger failure")
	}
}

func containsOption(options []string, want string) bool {
	for _, o := range options {
		if o == want {
			return true
		}
	}
	return false
}
