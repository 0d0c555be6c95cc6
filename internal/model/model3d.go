package model

// Model3D is embed metadata for a project's 3D preview.
// Rendering and file handling live entirely outside the portal.
type Model3D struct {
	ID        FlexID `json:"id"`
	ProjectID FlexID `json:"project_id,omitempty"`
	Name      string `json:"name"`
	URL       string `json:"url"`
}
