package domain

// ProgressStatus summarises how far a reader is through the active book.
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not-started"
	StatusInProgress ProgressStatus = "in-progress"
	StatusCompleted  ProgressStatus = "completed"
)

// Label returns the human readable form used by the CLI.
func (s ProgressStatus) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusInProgress:
		return "In Progress"
	default:
		return "Not Started"
	}
}

// ProgressPercent returns current/total as a percentage clamped to [0, 100].
// A non-positive total or current yields 0.
func ProgressPercent(current, total int) float64 {
	if total <= 0 || current <= 0 {
		return 0
	}
	if current >= total {
		return 100
	}
	return float64(current) / float64(total) * 100
}

// StatusFor maps a percentage to a status.
func StatusFor(percent float64) ProgressStatus {
	switch {
	case percent <= 0:
		return StatusNotStarted
	case percent >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// ChapterCompleted reports whether a reader whose progress is the given
// absolute chapter number has finished chapterNumber.
func ChapterCompleted(progress, chapterNumber int) bool {
	return chapterNumber > 0 && progress >= chapterNumber
}

// ReaderProgress is one row of the club progress dashboard.
type ReaderProgress struct {
	User    UserRef        `json:"user"`
	Current int            `json:"currentChapter"`
	Percent float64        `json:"percent"`
	Status  ProgressStatus `json:"status"`
}

// NewReaderProgress computes a dashboard row for u against a book total.
func NewReaderProgress(u *User, totalChapters int) ReaderProgress {
	pct := ProgressPercent(u.CurrentChapter, totalChapters)
	return ReaderProgress{
		User:    u.Ref(),
		Current: u.CurrentChapter,
		Percent: pct,
		Status:  StatusFor(pct),
	}
}
