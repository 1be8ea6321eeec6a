package service

import (
	"context"
	"math"
	"time"
	"unicode/utf8"

	"gedo/internal/model"
	"gedo/internal/repository"
)

const (
	statsWindowDays      = 30
	defaultTimelineDays  = 30
	maxTimelineDays      = 365
	defaultRecentLimit   = 5
	maxRecentLimit       = 50
	topTiposLimit        = 10
	activityPreviewRunes = 100
)

type DashboardStats struct {
	TotalRegistros         int     `json:"total_registros"`
	RegistrosUltimos30Dias int     `json:"registros_ultimos_30_dias"`
	RegistrosComAnexo      int     `json:"registros_com_anexo"`
	MediaDiaria            float64 `json:"media_diaria"`
}

// TimelinePoint is one day of the record chart. Data is formatted dd/mm.
type TimelinePoint struct {
	Data      string `json:"data"`
	Registros int    `json:"registros"`
}

type ActivityItem struct {
	ID        string `json:"id"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Tipo      string `json:"tipo"`
	Data      string `json:"data"`
	Obra      string `json:"obra"`
}

type TipoTotal struct {
	Tipo  string `json:"tipo"`
	Total int    `json:"total"`
}

// DashboardService aggregates records for the home screen. Standard users
// only see their own obra.
type DashboardService interface {
	Stats(ctx context.Context, actor *model.User) (*DashboardStats, error)
	// Timeline returns one point per day for the last dias days, zero days
	// included. obraID narrows an administrator's view.
	Timeline(ctx context.Context, actor *model.User, dias int, obraID string) ([]TimelinePoint, error)
	RecentActivity(ctx context.Context, actor *model.User, limit int) ([]ActivityItem, error)
	TopTipos(ctx context.Context, actor *model.User) ([]TipoTotal, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// scope resolves what actor may aggregate. ok is false for a standard user
// without an obra, who sees nothing.
func scope(actor *model.User, obraID string) (sc repository.DashboardScope, ok bool, err error) {
	if actor.IsAdmin() {
		return repository.DashboardScope{ObraID: obraID}, true, nil
	}
	if obraID != "" && obraID != actor.ObraID {
		return sc, false, ErrForbidden
	}
	if actor.ObraID == "" {
		return sc, false, nil
	}
	return repository.DashboardScope{ObraID: actor.ObraID}, true, nil
}

func (s *dashboardService) today() time.Time {
	return s.now().Truncate(24 * time.Hour)
}

func (s *dashboardService) Stats(ctx context.Context, actor *model.User) (*DashboardStats, error) {
	sc, ok, err := scope(actor, "")
	if err != nil || !ok {
		return &DashboardStats{}, err
	}
	today := s.today()
	t, err := s.repo.Totals(ctx, sc, today.AddDate(0, 0, -statsWindowDays))
	if err != nil {
		return nil, err
	}
	st := &DashboardStats{
		TotalRegistros:         t.Total,
		RegistrosUltimos30Dias: t.Since,
		RegistrosComAnexo:      t.WithAttachment,
	}
	if t.Total > 0 && t.First != nil {
		days := int(today.Sub(t.First.Truncate(24*time.Hour)).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		st.MediaDiaria = math.Round(float64(t.Total)/float64(days)*10) / 10
	}
	return st, nil
}

func (s *dashboardService) Timeline(ctx context.Context, actor *model.User, dias int, obraID string) ([]TimelinePoint, error) {
	sc, ok, err := scope(actor, obraID)
	if err != nil {
		return nil, err
	}
	if dias <= 0 {
		dias = defaultTimelineDays
	}
	if dias > maxTimelineDays {
		dias = maxTimelineDays
	}
	since := s.today().AddDate(0, 0, -(dias - 1))

	counts := map[string]int{}
	if ok {
		rows, err := s.repo.Timeline(ctx, sc, since)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			counts[r.Day.Format(time.DateOnly)] += r.Count
		}
	}
	points := make([]TimelinePoint, 0, dias)
	for d := 0; d < dias; d++ {
		day := since.AddDate(0, 0, d)
		points = append(points, TimelinePoint{
			Data:      day.Format("02/01"),
			Registros: counts[day.Format(time.DateOnly)],
		})
	}
	return points, nil
}

func (s *dashboardService) RecentActivity(ctx context.Context, actor *model.User, limit int) ([]ActivityItem, error) {
	sc, ok, err := scope(actor, "")
	if err != nil || !ok {
		return []ActivityItem{}, err
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	rows, err := s.repo.RecentActivity(ctx, sc, limit)
	if err != nil {
		return nil, err
	}
	items := make([]ActivityItem, 0, len(rows))
	for _, a := range rows {
		items = append(items, ActivityItem{
			ID:        a.ID,
			Titulo:    a.Titulo,
			Descricao: preview(a.Descricao),
			Tipo:      a.TipoRegistro,
			Data:      a.DataRegistro.Format("02/01/2006"),
			Obra:      a.ObraNome,
		})
	}
	return items, nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= activityPreviewRunes {
		return s
	}
	return string([]rune(s)[:activityPreviewRunes]) + "..."
}

func (s *dashboardService) TopTipos(ctx context.Context, actor *model.User) ([]TipoTotal, error) {
	sc, ok, err := scope(actor, "")
	if err != nil || !ok {
		return []TipoTotal{}, err
	}
	rows, err := s.repo.TopTipos(ctx, sc, topTiposLimit)
	if err != nil {
		return nil, err
	}
	out := make([]TipoTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, TipoTotal{Tipo: r.Nome, Total: r.Total})
	}
	return out, nil
}
