package dto

// SaveTemplateRequest snapshots the current working set under a name.
type SaveTemplateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
}
