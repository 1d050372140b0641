package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/readingclub/readingclub/internal/club"
	"github.com/readingclub/readingclub/internal/domain"
)

// openSchedule loads the active book and its weeks. It reports false, after
// telling the member, when no book is active.
func (a *app) openSchedule(cmd *cobra.Command) (*club.ScheduleView, club.Overview, bool, error) {
	view := club.NewScheduleView(a.api)
	if err := view.Open(cmd.Context()); err != nil {
		return nil, club.Overview{}, false, err
	}
	overview := view.Overview().Data
	if overview.NoActiveBook {
		a.printf("The club is not reading anything right now.\n")
		return view, overview, false, nil
	}
	return view, overview, true, nil
}

func (a *app) bookCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "book",
		Short:       "Show the current book and its reading schedule",
		Annotations: routed(club.RouteBook),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, overview, ok, err := a.openSchedule(cmd)
			if err != nil || !ok {
				return err
			}
			defer view.Close()

			book := overview.Book
			progress := club.NewProgressTracker(a.api, a.sessions, book)
			a.printf("%s by %s (%d chapters)\n", book.Title, book.Author, book.TotalChapters)
			a.printf("Your progress: %d/%d chapters (%.0f%%) %s\n\n",
				min(progress.Current(), book.TotalChapters), book.TotalChapters, progress.Percent(), progress.Status().Label())

			if len(overview.Weeks) == 0 {
				a.printf("No weeks scheduled yet.\n")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WEEK\tDATES\tTITLE\tID")
			for _, w := range overview.Weeks {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", w.WeekNumber, dateRange(w), w.Title, w.ID)
			}
			return tw.Flush()
		},
	}
}

func dateRange(w domain.Week) string {
	start, end := w.StartDate.String(), w.EndDate.String()
	switch {
	case start == "" && end == "":
		return "-"
	case end == "":
		return "from " + start
	case start == "":
		return "until " + end
	}
	return start + " to " + end
}

func (a *app) weekCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "week <number>",
		Short:       "List a week's chapters with your completion marks",
		Annotations: routed(club.RouteBook),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("week number must be an integer: %q", args[0])
			}

			view, overview, ok, err := a.openSchedule(cmd)
			if err != nil || !ok {
				return err
			}
			defer view.Close()

			var week *domain.Week
			for i := range overview.Weeks {
				if overview.Weeks[i].WeekNumber == number {
					week = &overview.Weeks[i]
				}
			}
			if week == nil {
				return fmt.Errorf("week %d is not on the schedule", number)
			}
			if err := view.Toggle(cmd.Context(), week.ID); err != nil {
				return err
			}

			a.printf("Week %d", week.WeekNumber)
			if week.Title != "" {
				a.printf(": %s", week.Title)
			}
			a.printf(" (%s)\n", dateRange(*week))

			chapters := view.Chapters(week.ID).Data
			if len(chapters) == 0 {
				a.printf("No chapters assigned yet.\n")
				return nil
			}
			progress := club.NewProgressTracker(a.api, a.sessions, overview.Book)
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DONE\tCHAPTER\tTITLE\tCOMMENTS\tID")
			for _, c := range chapters {
				mark := " "
				if progress.Completed(c.ChapterNumber) {
					mark = "x"
				}
				fmt.Fprintf(tw, "[%s]\t%d\t%s\t%d\t%s\n", mark, c.ChapterNumber, c.Title, c.CommentCount, c.ID)
			}
			return tw.Flush()
		},
	}
}

func (a *app) progressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "progress",
		Short:       "Show every member's progress through the current book",
		Annotations: routed(club.RouteBook),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, overview, ok, err := a.openSchedule(cmd)
			if err != nil || !ok {
				return err
			}
			view.Close()

			tracker := club.NewProgressTracker(a.api, a.sessions, overview.Book)
			defer tracker.Close()
			rows, err := tracker.Readers(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MEMBER\tCHAPTER\tPERCENT\tSTATUS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%.0f%%\t%s\n", r.User.Username, r.Current, r.Percent, r.Status.Label())
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <chapter>",
		Short: "Mark every chapter up to and including <chapter> as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapter, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("chapter must be an integer: %q", args[0])
			}
			view, overview, ok, err := a.openSchedule(cmd)
			if err != nil || !ok {
				return err
			}
			view.Close()

			tracker := club.NewProgressTracker(a.api, a.sessions, overview.Book)
			if err := tracker.MarkComplete(cmd.Context(), chapter); err != nil {
				return err
			}
			a.printf("Progress: chapter %d (%.0f%%) %s\n", tracker.Current(), tracker.Percent(), tracker.Status().Label())
			return nil
		},
	})
	return cmd
}
