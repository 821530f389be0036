package schema

// ContribContributionTable represents the 'contrib.contribution' table
type ContribContributionTable struct {
	Table       string
	ID          string
	UserID      string
	Username    string
	Kind        string
	Payload     string
	Status      string
	Note        string
	SubmittedAt string
	ReviewedAt  string
	ReviewedBy  string
}

// ContribContribution is the schema definition for contrib.contribution
var ContribContribution = ContribContributionTable{
	Table:       "contrib.contribution",
	ID:          "id",
	UserID:      "userid",
	Username:    "username",
	Kind:        "kind",
	Payload:     "payload",
	Status:      "status",
	Note:        "note",
	SubmittedAt: "submittedat",
	ReviewedAt:  "reviewedat",
	ReviewedBy:  "reviewedby",
}

func (t ContribContributionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Username, t.Kind, t.Payload,
		t.Status, t.Note, t.SubmittedAt, t.ReviewedAt, t.ReviewedBy,
	}
}
