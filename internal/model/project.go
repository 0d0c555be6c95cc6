package model

type Project struct {
	ID          FlexID     `json:"id"`
	Name        string     `json:"name"`
	Client      string     `json:"client,omitempty"`
	Description string     `json:"description,omitempty"`
	StartDate   string     `json:"start_date,omitempty"`
	EndDate     string     `json:"end_date,omitempty"`
	Progress    *int       `json:"progress,omitempty"`
	Status      string     `json:"status,omitempty"` // free-form, e.g. "in-progress"
	Tasks       []Task     `json:"tasks,omitempty"`
	Updates     []Update   `json:"updates,omitempty"`
	Documents   []Document `json:"documents,omitempty"`
	Users       []User     `json:"users,omitempty"` // assigned users; authority for client visibility
}

// Update is an append-only progress note on a project.
type Update struct {
	ID        FlexID `json:"id"`
	ProjectID FlexID `json:"project_id,omitempty"`
	Date      string `json:"date"`
	Content   string `json:"content"`
}

// Document is file metadata only; the portal never touches file bytes.
type Document struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"` // MIME-derived tag, e.g. "pdf"
	Size string `json:"size,omitempty"`
	URL  string `json:"url"`
}
