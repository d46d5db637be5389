package types

// Status is a type for the lifecycle status of a resource in the database.
// Any changes to this type should be reflected in the database schema by running migrations
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() bool {
	switch s {
	case StatusPublished, StatusArchived, StatusDeleted:
		return true
	}
	return false
}
