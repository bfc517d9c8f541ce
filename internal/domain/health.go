package domain

// HealthStatus grades one `gitme doctor` check. Any HealthError makes the
// command exit non-zero.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is one line of the doctor table: config, git, repository,
// a provider credential or the history store.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport lists checks in the order they ran.
type HealthReport struct {
	Checks []HealthCheck
}

// Failed returns the names of checks graded HealthError.
func (r HealthReport) Failed() []string {
	var names []string
	for _, check := range r.Checks {
		if check.Status == HealthError {
			names = append(names, check.Name)
		}
	}
	return names
}
