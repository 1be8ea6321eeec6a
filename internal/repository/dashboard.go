package repository

import (
	"context"
	"time"
)

// DashboardScope restricts the aggregates to one obra when ObraID is set.
type DashboardScope struct {
	ObraID string
}

// RegistroTotals are the raw counters behind the dashboard summary.
type RegistroTotals struct {
	Total          int
	Since          int // records dated on or after the requested day
	WithAttachment int
	First          *time.Time
}

// DayCount is the number of records dated on one day.
type DayCount struct {
	Day   time.Time
	Count int
}

// Activity is a recent record joined with its obra name.
type Activity struct {
	ID           string
	Titulo       string
	Descricao    string
	TipoRegistro string
	DataRegistro time.Time
	ObraNome     string
}

// TipoCount is the number of records of one type.
type TipoCount struct {
	Nome  string
	Total int
}

type DashboardRepository interface {
	Totals(ctx context.Context, scope DashboardScope, since time.Time) (RegistroTotals, error)
	Timeline(ctx context.Context, scope DashboardScope, since time.Time) ([]DayCount, error)
	RecentActivity(ctx context.Context, scope DashboardScope, limit int) ([]Activity, error)
	TopTipos(ctx context.Context, scope DashboardScope, limit int) ([]TipoCount, error)
}
