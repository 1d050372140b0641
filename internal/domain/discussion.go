package domain

// Comment is a member's remark on a chapter.
type Comment struct {
	Entity
	ChapterID string  `json:"chapterId"`
	User      UserRef `json:"user"`
	Content   string  `json:"content"`
}

// Question is a discussion prompt attached to a week.
type Question struct {
	Entity
	WeekID   string `json:"weekId"`
	Question string `json:"question"`
}

// Answer is a member's reply to a question. Each member answers a
// question at most once.
type Answer struct {
	Entity
	QuestionID string  `json:"questionId"`
	User       UserRef `json:"user"`
	Answer     string  `json:"answer"`
}

// OwnedBy reports whether ownerID belongs to the given user. Empty ids never
// match, so an anonymous caller owns nothing.
func OwnedBy(ownerID, userID string) bool {
	return ownerID != "" && ownerID == userID
}
