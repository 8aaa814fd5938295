package types

// Status is the lifecycle state shared by fund controller and fund manager
// instances.
type Status string

const (
	StatusActive      Status = "active"
	StatusDisabled    Status = "disabled"
	StatusMigratedOut Status = "migrated_out"
)

// RequireActive fails fast with a state error naming the component.
func (s Status) RequireActive(component string) error {
	switch s {
	case StatusActive:
		return nil
	case StatusMigratedOut:
		return ErrMigratedOut.Wrapf("%s has been replaced by its successor", component)
	default:
		return ErrFundDisabled.Wrapf("%s is disabled; this may be due to an upgrade", component)
	}
}

// RequireDisabled guards the migration entry points.
func (s Status) RequireDisabled(component string) error {
	switch s {
	case StatusDisabled:
		return nil
	case StatusMigratedOut:
		return ErrMigratedOut.Wrapf("%s has already been migrated", component)
	default:
		return ErrFundDisabled.Wrapf("%s must be disabled before it can be upgraded", component)
	}
}

// RequireNotMigrated allows Active and Disabled.
func (s Status) RequireNotMigrated(component string) error {
	if s == StatusMigratedOut {
		return ErrMigratedOut.Wrapf("%s has been replaced by its successor", component)
	}
	return nil
}

func (s Status) IsActive() bool { return s == StatusActive }
