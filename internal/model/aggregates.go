package model

import "time"

// GougedByDate is one row of the per-day gouging aggregates table.
type GougedByDate struct {
	Date               time.Time
	GougedListings     int
	TotalDollarsGouged float64
	CumulativeCount    int
}

// ChargedGouger is one row of the enforcement table.
type ChargedGouger struct {
	Name        string
	DateCharged time.Time
}
