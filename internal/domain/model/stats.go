package model

// Stats aggregates dashboard figures for the operator panel.
type Stats struct {
	Products       int64
	ActiveProducts int64
	Orders         int64
	Income         int64
}
