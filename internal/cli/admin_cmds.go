package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/club"
)

func (a *app) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage books, the schedule and discussion questions",
		Annotations: map[string]string{
			annRoute: string(club.RouteBook),
			annAdmin: "true",
		},
	}
	cmd.AddCommand(
		a.adminBooksCommand(),
		a.adminBookCommand(),
		a.adminWeekCommand(),
		a.adminChapterCommand(),
		a.adminQuestionCommand(),
	)
	return cmd
}

func (a *app) adminBooksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List every book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := a.api.Books(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ACTIVE\tTITLE\tAUTHOR\tCHAPTERS\tID")
			for _, b := range books {
				active := ""
				if b.IsActive {
					active = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", active, b.Title, b.Author, b.TotalChapters, b.ID)
			}
			return tw.Flush()
		},
	}
}

func (a *app) adminBookCommand() *cobra.Command {
	var in client.NewBook
	var activate bool

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := a.api.CreateBook(cmd.Context(), in)
			if err != nil {
				return err
			}
			if activate {
				if book, err = a.api.ActivateBook(cmd.Context(), book.ID); err != nil {
					return err
				}
			}
			a.printf("Added %q (%s).\n", book.Title, book.ID)
			if book.IsActive {
				a.printf("It is now the club's current book.\n")
			}
			return nil
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "title")
	add.Flags().StringVar(&in.Author, "author", "", "author")
	add.Flags().IntVar(&in.TotalChapters, "chapters", 0, "total number of chapters")
	add.Flags().BoolVar(&activate, "activate", false, "make it the current book")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("chapters")

	activateCmd := &cobra.Command{
		Use:   "activate <book-id>",
		Short: "Make a book the club's current book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.api.ActivateBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%q is now the club's current book.\n", book.Title)
			return nil
		},
	}

	cmd := &cobra.Command{Use: "book", Short: "Add or activate books"}
	cmd.AddCommand(add, activateCmd)
	return cmd
}

func (a *app) adminWeekCommand() *cobra.Command {
	var in client.NewWeek

	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule a week of the current book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.BookID == "" {
				book, err := a.api.CurrentBook(cmd.Context())
				if err != nil {
					return err
				}
				in.BookID = book.ID
			}
			week, err := a.api.CreateWeek(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.printf("Scheduled week %d (%s).\n", week.WeekNumber, week.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.BookID, "book", "", "book id (defaults to the current book)")
	add.Flags().IntVar(&in.WeekNumber, "number", 0, "week number")
	add.Flags().StringVar(&in.Title, "title", "", "title")
	add.Flags().StringVar(&in.StartDate, "start", "", "start date, YYYY-MM-DD")
	add.Flags().StringVar(&in.EndDate, "end", "", "end date, YYYY-MM-DD")
	_ = add.MarkFlagRequired("number")

	cmd := &cobra.Command{Use: "week", Short: "Manage the reading schedule"}
	cmd.AddCommand(add)
	return cmd
}

func (a *app) adminChapterCommand() *cobra.Command {
	var in client.NewChapter

	add := &cobra.Command{
		Use:   "add",
		Short: "Assign a chapter to a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chapter, err := a.api.CreateChapter(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.printf("Added chapter %d (%s).\n", chapter.ChapterNumber, chapter.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.WeekID, "week", "", "week id")
	add.Flags().IntVar(&in.ChapterNumber, "number", 0, "chapter number")
	add.Flags().StringVar(&in.Title, "title", "", "title")
	_ = add.MarkFlagRequired("week")
	_ = add.MarkFlagRequired("number")

	cmd := &cobra.Command{Use: "chapter", Short: "Manage chapters"}
	cmd.AddCommand(add)
	return cmd
}

func (a *app) adminQuestionCommand() *cobra.Command {
	var weekID string

	add := &cobra.Command{
		Use:   "add <question>...",
		Short: "Post a discussion question for a week",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.api.CreateQuestion(cmd.Context(), weekID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.printf("Posted question %s.\n", q.ID)
			return nil
		},
	}
	add.Flags().StringVar(&weekID, "week", "", "week id")
	_ = add.MarkFlagRequired("week")

	cmd := &cobra.Command{Use: "question", Short: "Manage discussion questions"}
	cmd.AddCommand(add)
	return cmd
}
