package user

// UpdateUserInput is the body of PUT /user/:id. Only the display name is
// editable; email and role changes go through other routes.
type UpdateUserInput struct {
	Names string `json:"names" validate:"required,max=100"`
}
