package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Password  string
	Avatar    string
	CreatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Password:  "passwordhash",
	Avatar:    "avatar",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Password, t.Avatar, t.CreatedAt}
}
