package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/club"
	"github.com/readingclub/readingclub/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) commentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "comments <chapter-id>",
		Short:       "List a chapter's comments, newest first",
		Annotations: routed(club.RouteBook),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thread := club.NewCommentThread(a.api, a.sessions, nil, args[0])
			defer thread.Close()
			if err := thread.View(cmd.Context()); err != nil {
				return err
			}

			comments := thread.State().Data
			if len(comments) == 0 {
				a.printf("No comments yet.\n")
				return nil
			}
			for _, c := range comments {
				a.printComment(thread, c)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <chapter-id> <text>...",
			Short: "Comment on a chapter",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				thread := club.NewCommentThread(a.api, a.sessions, nil, args[0])
				defer thread.Close()
				c, err := thread.Post(cmd.Context(), strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				a.printf("Posted comment %s.\n", c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit <chapter-id> <comment-id> <text>...",
			Short: "Edit one of your comments",
			Args:  cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				thread := club.NewCommentThread(a.api, a.sessions, nil, args[0])
				defer thread.Close()
				if err := thread.View(cmd.Context()); err != nil {
					return err
				}
				c, err := thread.Edit(cmd.Context(), args[1], strings.Join(args[2:], " "))
				if err != nil {
					return err
				}
				a.printComment(thread, *c)
				return nil
			},
		},
		a.deleteCommentCommand(),
	)
	return cmd
}

func (a *app) deleteCommentCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <chapter-id> <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := club.ConfirmFunc(a.prompt.confirm)
			if yes {
				confirm = func(string) bool { return true }
			}
			thread := club.NewCommentThread(a.api, a.sessions, confirm, args[0])
			defer thread.Close()
			if err := thread.View(cmd.Context()); err != nil {
				return err
			}

			deleted, err := thread.Delete(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if deleted {
				a.printf("Comment deleted.\n")
			} else {
				a.printf("Kept the comment.\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) printComment(thread *club.CommentThread, c domain.Comment) {
	mine := ""
	if thread.CanModify(c) {
		mine = " (yours)"
	}
	a.printf("%s  %s%s  %s\n  %s\n", c.ID, c.User.Username, mine, c.CreatedAt.Local().Format(timeLayout), c.Content)
}

func (a *app) questionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "questions <week-id>",
		Short:       "Show a week's discussion questions and answers",
		Annotations: routed(club.RouteBook),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := club.NewQuestionBoard(a.api, a.sessions, args[0])
			defer board.Close()
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}

			items := board.State().Data
			if len(items) == 0 {
				a.printf("No questions for this week.\n")
				return nil
			}
			for i, item := range items {
				if i > 0 {
					a.printf("\n")
				}
				a.printQuestion(item)
			}
			return nil
		},
	}
}

func (a *app) printQuestion(item club.QuestionItem) {
	a.printf("%s  %s\n", item.Question.ID, item.Question.Question)
	if item.Mine != nil {
		a.printf("  Your answer: %s\n", item.Mine.Answer)
	} else {
		a.printf("  You have not answered yet.\n")
	}
	for _, other := range item.Others {
		a.printf("  %s: %s\n", other.User.Username, other.Answer)
	}
	if item.Note != "" {
		a.printf("  (%s)\n", item.Note)
	}
}

func (a *app) answerCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "answer <week-id> <question-id> <text>...",
		Short:       "Answer a discussion question (once per question)",
		Annotations: routed(club.RouteBook),
		Args:        cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := club.NewQuestionBoard(a.api, a.sessions, args[0])
			defer board.Close()
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			if _, err := board.Submit(cmd.Context(), args[1], strings.Join(args[2:], " ")); err != nil {
				return err
			}
			item, _ := board.Item(args[1])
			a.printQuestion(item)
			return nil
		},
	}
}

func (a *app) searchCommand() *cobra.Command {
	var q client.SearchQuery

	cmd := &cobra.Command{
		Use:         "search <text>...",
		Short:       "Search comments, answers and questions",
		Annotations: routed(club.RouteBook),
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Text = strings.Join(args, " ")
			res, err := club.NewSearchView(a.api).Run(cmd.Context(), q)
			if err != nil {
				return err
			}

			a.printf("%d result(s) for %q\n", res.Total, res.Query)
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, hit := range res.Hits {
				text := hit.Highlight
				if text == "" {
					text = hit.Body
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", hit.Type, hit.Author, hit.ID, text)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&q.Types, "type", "t", "", "comma separated document types: comment, answer, question")
	cmd.Flags().StringVarP(&q.Author, "author", "a", "", "only documents by this username")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "relevance (default) or recent")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 0, "maximum number of results")
	return cmd
}
