package intake

import (
	"context"
	"sort"
	"time"
)

// maxStreakLookback acota cuántos eventos VERIFIED se leen para calcular la racha.
const maxStreakLookback = 365

// ComputeStreak cuenta días calendario consecutivos con al menos una toma verificada,
// terminando en el día de asOf (en loc).
//
// Reglas:
//   - varias tomas el mismo día cuentan como un día
//   - se ignoran eventos posteriores al día de asOf
//   - si el día más reciente es ayer, la racha sigue viva (hoy todavía no terminó)
//   - si es anterior a ayer, la racha es 0
//   - el primer hueco corta la cadena; no se saltean días
func ComputeStreak(verifiedAt []time.Time, asOf time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	ref := dayIndex(asOf, loc)

	days := distinctDaysDesc(verifiedAt, ref, loc)
	if len(days) == 0 {
		return 0
	}

	offset := ref - days[0]
	if offset > 1 {
		return 0
	}

	streak := 0
	for _, d := range days {
		if ref-d != offset {
			break
		}
		streak++
		offset++
	}
	return streak
}

// priorStreak es la racha que una toma de hoy extendería: la cadena que termina
// antes del día de now. Las tomas de hoy no cuentan para no duplicar el día.
func priorStreak(verifiedAt []time.Time, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	today := dayIndex(now, loc)

	before := make([]time.Time, 0, len(verifiedAt))
	for _, t := range verifiedAt {
		if dayIndex(t, loc) < today {
			before = append(before, t)
		}
	}
	return ComputeStreak(before, now, loc)
}

// ComputeStreak lee los últimos eventos VERIFIED del sujeto y calcula la racha a asOf.
func (s *Service) ComputeStreak(ctx context.Context, subjectID string, asOf time.Time) (int, error) {
	times, err := s.verifiedTimes(ctx, subjectID, asOf)
	if err != nil {
		return 0, err
	}
	return ComputeStreak(times, asOf, s.loc), nil
}

func (s *Service) verifiedTimes(ctx context.Context, subjectID string, asOf time.Time) ([]time.Time, error) {
	end := EndOfDay(asOf, s.loc)
	items, err := s.repo.Find(ctx, Filter{
		SubjectID: subjectID,
		Statuses:  []Status{StatusVerified},
		To:        &end,
		Limit:     maxStreakLookback,
	})
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, len(items))
	for _, e := range items {
		out = append(out, e.TakenAt)
	}
	return out, nil
}

// StartOfDay devuelve la medianoche del día calendario de t en loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay devuelve el último instante del día calendario de t en loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	start := StartOfDay(t, loc)
	y, m, d := start.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, start.Location()).Add(-time.Nanosecond)
}

// dayIndex numera días calendario; la resta entre dos índices no se ve afectada por DST.
func dayIndex(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func distinctDaysDesc(ts []time.Time, maxDay int, loc *time.Location) []int {
	seen := make(map[int]struct{}, len(ts))
	out := make([]int, 0, len(ts))
	for _, t := range ts {
		d := dayIndex(t, loc)
		if d > maxDay {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
