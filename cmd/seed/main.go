// Package main seeds a reading club database with a demo book, a schedule,
// members, comments and answers.
//
// It takes the same flags and environment as the API server and must not
// run while the server holds the database.
//
// Usage:
//
//	DATA_PATH=~/.readingclub go run ./cmd/seed
//	SEED_PASSWORD=secret123 go run ./cmd/seed -data-path /tmp/club
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/readingclub/readingclub/internal/di"
	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/logger"
	"github.com/readingclub/readingclub/internal/service"
)

type seedWeek struct {
	title      string
	start, end domain.Date
	chapters   []string
	questions  []string
}

var demoWeeks = []seedWeek{
	{
		title:    "Miss Brooke",
		start:    domain.NewDate(2026, 3, 2),
		end:      domain.NewDate(2026, 3, 8),
		chapters: []string{"Chapter I", "Chapter II", "Chapter III", "Chapter IV"},
		questions: []string{
			"What does Dorothea hope to find in marriage?",
			"How does Celia see her sister?",
		},
	},
	{
		title:     "Old and Young",
		start:     domain.NewDate(2026, 3, 9),
		end:       domain.NewDate(2026, 3, 15),
		chapters:  []string{"Chapter XI", "Chapter XII", "Chapter XIII"},
		questions: []string{"Is Lydgate's ambition admirable?"},
	},
	{
		title:     "Waiting for Death",
		start:     domain.NewDate(2026, 3, 16),
		end:       domain.NewDate(2026, 3, 22),
		chapters:  []string{"Chapter XXIII", "Chapter XXIV", "Chapter XXV"},
		questions: []string{"Who is to blame for Fred's debts?"},
	},
}

var demoMembers = []struct {
	username string
	progress int
}{
	{"dorothea", 7},
	{"will", 4},
	{"celia", 0},
}

func main() {
	injector := di.NewContainer(os.Args[1:])
	defer func() { _ = injector.Shutdown() }()

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), injector, log); err != nil {
		log.Error("seed failed", "error", err)
		_ = injector.Shutdown()
		os.Exit(1)
	}
}

func seed(ctx context.Context, injector do.Injector, log *logger.Logger) error {
	authSvc, err := do.Invoke[*service.AuthService](injector)
	if err != nil {
		return err
	}
	users := do.MustInvoke[*service.UserService](injector)
	books := do.MustInvoke[*service.BookService](injector)
	schedule := do.MustInvoke[*service.ScheduleService](injector)
	comments := do.MustInvoke[*service.CommentService](injector)
	questions := do.MustInvoke[*service.QuestionService](injector)

	if book, err := books.Current(ctx); err == nil {
		log.Info("database already has an active book, nothing to do", "book", book.Title)
		return nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}

	// The first account registered on an empty database is the admin.
	admin, err := authSvc.Register(ctx, service.RegisterRequest{Username: "admin", Password: password})
	if err != nil && !errors.Is(err, domainerrors.ErrAlreadyExists) {
		return fmt.Errorf("register admin: %w", err)
	}
	if err != nil {
		res, loginErr := authSvc.Login(ctx, service.LoginRequest{Username: "admin", Password: password})
		if loginErr != nil {
			return fmt.Errorf("admin exists but SEED_PASSWORD does not match: %w", loginErr)
		}
		admin = res
	}
	adminID := admin.User.ID
	if !admin.User.IsAdmin() {
		return fmt.Errorf("user %q exists but is not an admin", admin.User.Username)
	}

	book, err := books.Create(ctx, adminID, service.CreateBookRequest{Title: "Middlemarch", Author: "George Eliot", TotalChapters: 86})
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	if _, err := books.Activate(ctx, adminID, book.ID); err != nil {
		return fmt.Errorf("activate book: %w", err)
	}

	var firstChapterID string
	var questionIDs []string
	chapterNumber := 0
	for i, w := range demoWeeks {
		week, err := schedule.CreateWeek(ctx, adminID, service.CreateWeekRequest{
			BookID: book.ID, WeekNumber: i + 1, Title: w.title, StartDate: w.start, EndDate: w.end,
		})
		if err != nil {
			return fmt.Errorf("create week %d: %w", i+1, err)
		}
		for _, title := range w.chapters {
			chapterNumber++
			ch, err := schedule.CreateChapter(ctx, adminID, service.CreateChapterRequest{WeekID: week.ID, ChapterNumber: chapterNumber, Title: title})
			if err != nil {
				return fmt.Errorf("create chapter %d: %w", chapterNumber, err)
			}
			if firstChapterID == "" {
				firstChapterID = ch.ID
			}
		}
		for _, text := range w.questions {
			q, err := questions.Create(ctx, adminID, service.CreateQuestionRequest{WeekID: week.ID, Question: text})
			if err != nil {
				return fmt.Errorf("create question: %w", err)
			}
			questionIDs = append(questionIDs, q.ID)
		}
	}

	for _, m := range demoMembers {
		user, err := users.Create(ctx, adminID, service.CreateUserRequest{Username: m.username, Password: password})
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			log.Warn("member already exists, skipping", "username", m.username)
			continue
		}
		if err != nil {
			return fmt.Errorf("create member %s: %w", m.username, err)
		}
		if m.progress > 0 {
			if _, err := users.SetProgress(ctx, user.ID, user.ID, m.progress); err != nil {
				return fmt.Errorf("set progress for %s: %w", m.username, err)
			}
			if _, err := comments.Create(ctx, user.ID, service.CreateCommentRequest{
				ChapterID: firstChapterID,
				Content:   fmt.Sprintf("%s here: the opening chapters won me over.", m.username),
			}); err != nil {
				return fmt.Errorf("comment as %s: %w", m.username, err)
			}
			if _, err := questions.Answer(ctx, user.ID, service.CreateAnswerRequest{
				QuestionID: questionIDs[0],
				Answer:     "A partner in some great work, and she is sure Casaubon is one.",
			}); err != nil {
				return fmt.Errorf("answer as %s: %w", m.username, err)
			}
		}
	}

	log.Info("seeded demo club",
		"book", book.Title,
		"weeks", len(demoWeeks),
		"chapters", chapterNumber,
		"questions", len(questionIDs),
		"members", len(demoMembers)+1,
	)
	return nil
}
