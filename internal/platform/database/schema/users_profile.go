package schema

// UserProfileTable represents the 'users.profile' table.
// Social links, skills, experience and education are JSONB documents.
type UserProfileTable struct {
	Table          string
	ID             string
	Owner          string
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GitHubUsername string
	Social         string
	Experience     string
	Education      string
	CreatedAt      string
	UpdatedAt      string
}

// UserProfile is the schema definition for users.profile
var UserProfile = UserProfileTable{
	Table:          "users.profile",
	ID:             "id",
	Owner:          "owner",
	Company:        "company",
	Website:        "website",
	Location:       "location",
	Status:         "status",
	Skills:         "skills",
	Bio:            "bio",
	GitHubUsername: "githubusername",
	Social:         "social",
	Experience:     "experience",
	Education:      "education",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t UserProfileTable) Columns() []string {
	return []string{
		t.ID, t.Owner, t.Company, t.Website, t.Location, t.Status, t.Skills,
		t.Bio, t.GitHubUsername, t.Social, t.Experience, t.Education,
		t.CreatedAt, t.UpdatedAt,
	}
}
