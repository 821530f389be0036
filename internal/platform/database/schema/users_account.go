package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	UserID       string
	Username     string
	FirstName    string
	LastName     string
	IsAdmin      string
	Exp          string
	PasswordHash string
	CreatedAt    string
	UpdatedAt    string
	LastActiveAt string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	UserID:       "userid",
	Username:     "username",
	FirstName:    "firstname",
	LastName:     "lastname",
	IsAdmin:      "isadmin",
	Exp:          "exp",
	PasswordHash: "passwordhash",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	LastActiveAt: "lastactiveat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.UserID, t.Username, t.FirstName, t.LastName, t.IsAdmin,
		t.Exp, t.PasswordHash, t.CreatedAt, t.UpdatedAt, t.LastActiveAt,
	}
}
