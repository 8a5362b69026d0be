package models

// Level identifies one step of the location hierarchy, ordered from
// broadest to narrowest.
type Level int

const (
	LevelDivision Level = iota
	LevelDepartment
	LevelStore
	LevelCamera
)

// LevelCount is the number of hierarchy levels.
const LevelCount = 4

// String returns the display name for a level.
func (l Level) String() string {
	switch l {
	case LevelDivision:
		return "Division"
	case LevelDepartment:
		return "Department"
	case LevelStore:
		return "Store"
	case LevelCamera:
		return "Camera"
	default:
		return "Unknown"
	}
}

// LocationFilter is the current hierarchical location selection. An empty
// string at a level means "no constraint". The filter coordinator keeps the
// top-down invariant (a set level implies its ancestors were set when it was
// chosen); the type itself is a plain value.
type LocationFilter struct {
	Division   string
	Department string
	Store      string
	Camera     string
}

// Get returns the selection at a level.
func (f LocationFilter) Get(level Level) string {
	switch level {
	case LevelDivision:
		return f.Division
	case LevelDepartment:
		return f.Department
	case LevelStore:
		return f.Store
	case LevelCamera:
		return f.Camera
	default:
		return ""
	}
}

// Set returns a copy with the selection at a level replaced. It does not
// clear deeper levels; that is the coordinator's job.
func (f LocationFilter) Set(level Level, value string) LocationFilter {
	switch level {
	case LevelDivision:
		f.Division = value
	case LevelDepartment:
		f.Department = value
	case LevelStore:
		f.Store = value
	case LevelCamera:
		f.Camera = value
	}
	return f
}

// IsZero reports whether no level is constrained.
func (f LocationFilter) IsZero() bool {
	return f.Division == "" && f.Department == "" && f.Store == "" && f.Camera == ""
}

// Narrowest returns the deepest constrained level, or -1 when the filter is
// unconstrained.
func (f LocationFilter) Narrowest() Level {
	for l := LevelCamera; l >= LevelDivision; l-- {
		if f.Get(l) != "" {
			return l
		}
	}
	return -1
}
