package model

// DefaultUserID owns tasks created without an explicit user.
const DefaultUserID = "default"

// Scope identifies the caller a request acts on behalf of.
type Scope struct {
	UserID string
}

// Owner returns the storage owner for the scope.
func (sc Scope) Owner() string {
	if sc.UserID == "" {
		return DefaultUserID
	}
	return sc.UserID
}

// Environment names the deployment the process runs in.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentDevelopment Environment = "development"
)
