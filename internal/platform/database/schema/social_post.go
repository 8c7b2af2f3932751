package schema

// SocialPostTable represents the 'social.post' table.
// Likes and comments are embedded JSONB arrays, newest first.
type SocialPostTable struct {
	Table     string
	ID        string
	Author    string
	Name      string
	Avatar    string
	Text      string
	Likes     string
	Comments  string
	CreatedAt string
}

// SocialPost is the schema definition for social.post
var SocialPost = SocialPostTable{
	Table:     "social.post",
	ID:        "id",
	Author:    "author",
	Name:      "name",
	Avatar:    "avatar",
	Text:      "text",
	Likes:     "likes",
	Comments:  "comments",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SocialPostTable) Columns() []string {
	return []string{t.ID, t.Author, t.Name, t.Avatar, t.Text, t.Likes, t.Comments, t.CreatedAt}
}
