package user

import (
	"github.com/gestia/gestia/internal/types"
)

// User is an internal staff account
type User struct {
	// ID is the unique identifier of the user; when the auth provider
	// creates the account this is the provider's subject id
	ID string `db:"id" json:"id"`

	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`

	// Role is a display label only; role-based visibility rules are out
	// of scope
	Role string `db:"role" json:"role"`

	types.BaseModel
}
