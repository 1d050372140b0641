package domain

// Book is a title the club reads. At most one book is active at a time.
type Book struct {
	Entity
	Title         string `json:"title"`
	Author        string `json:"author"`
	TotalChapters int    `json:"totalChapters"`
	IsActive      bool   `json:"isActive"`
}
