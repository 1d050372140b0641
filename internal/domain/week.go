package domain

// Week is one scheduled reading period of a book.
type Week struct {
	Entity
	BookID     string `json:"bookId"`
	WeekNumber int    `json:"weekNumber"`
	Title      string `json:"title"`
	StartDate  Date   `json:"startDate"`
	EndDate    Date   `json:"endDate"`
}

// Chapter is a chapter assigned to a week.
type Chapter struct {
	Entity
	WeekID        string `json:"weekId"`
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
	CommentCount  int    `json:"commentCount"`
}
