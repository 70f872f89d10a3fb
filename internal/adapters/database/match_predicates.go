package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
)

const dialect = "postgres"

// overlaps matches rows whose array column shares at least one value with c.
func overlaps(column string, c entities.Constraint) exp.Expression {
	if c.IsUnconstrained() {
		return nil
	}
	return goqu.L(column+" && ?", pq.Array(c.Values()))
}

// overlapsFold is overlaps for display-cased columns; c holds lowercase values.
func overlapsFold(column string, c entities.Constraint) exp.Expression {
	if c.IsUnconstrained() {
		return nil
	}
	return goqu.L("EXISTS (SELECT 1 FROM unnest("+column+") AS v WHERE lower(v) = ANY(?))", pq.Array(c.Values()))
}

// memberOf matches rows whose scalar column is one of c's values.
func memberOf(column string, c entities.Constraint) exp.Expression {
	if c.IsUnconstrained() {
		return nil
	}
	if v, ok := c.Single(); ok {
		return goqu.C(column).Eq(v)
	}
	return goqu.C(column).In(c.Values())
}

// zipPrefix is a coarse locality match on the first three ZIP digits.
func zipPrefix(criteria entities.MatchCriteria) exp.Expression {
	prefix := criteria.ZipPrefix()
	if prefix == "" {
		return nil
	}
	return goqu.C("zip_code").Like(prefix + "%")
}

func fullText(query string) exp.Expression {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return goqu.L("search_vector @@ plainto_tsquery('english', ?)", query)
}

// whereAll ANDs every non-nil predicate onto ds, always including the active flag.
func whereAll(ds *goqu.SelectDataset, predicates ...exp.Expression) *goqu.SelectDataset {
	ds = ds.Where(goqu.C("is_active").IsTrue())
	for _, p := range predicates {
		if p != nil {
			ds = ds.Where(p)
		}
	}
	return ds
}

// availabilityRankOrder sorts rows by the explicit availability rank table,
// unknown statuses last.
func availabilityRankOrder() exp.OrderedExpression {
	statuses := make([]string, 0, len(entities.AvailabilityRank))
	for s := range entities.AvailabilityRank {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return entities.AvailabilityRank[statuses[i]] < entities.AvailabilityRank[statuses[j]]
	})

	var b strings.Builder
	args := make([]interface{}, 0, len(statuses))
	b.WriteString("CASE availability_status")
	for _, s := range statuses {
		fmt.Fprintf(&b, " WHEN ? THEN %d", entities.AvailabilityRank[s])
		args = append(args, s)
	}
	fmt.Fprintf(&b, " ELSE %d END", entities.AvailabilityRankUnknown)
	return goqu.L(b.String(), args...).Asc()
}

func waitWeeksOrder() exp.OrderedExpression {
	return goqu.C("typical_wait_weeks").Asc().NullsLast()
}

func directional(column, order string) exp.OrderedExpression {
	if order == entities.SortDesc {
		return goqu.C(column).Desc()
	}
	return goqu.C(column).Asc()
}

// paginate runs the count query, then the page query when the page window
// can contain rows. dest receives the scanned page.
func (a *baseAdapter) paginate(
	ctx context.Context,
	filtered *goqu.SelectDataset,
	columns []interface{},
	order []exp.OrderedExpression,
	criteria entities.MatchCriteria,
	dest interface{},
	entity string,
) (int, error) {
	countSQL, countArgs, err := filtered.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s count query: %w", entity, err)
	}

	start := time.Now()
	var total int
	if err := a.client.X().GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", entity, err)
	}
	observability.RecordDBMetric(ctx, a.metrics, entity+".count", time.Since(start))

	offset := criteria.Offset()
	if total == 0 || offset < 0 || offset >= total {
		return total, nil
	}

	pageSQL, pageArgs, err := filtered.
		Select(columns...).
		Order(order...).
		Limit(uint(criteria.Limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s page query: %w", entity, err)
	}

	start = time.Now()
	if err := a.client.X().SelectContext(ctx, dest, pageSQL, pageArgs...); err != nil {
		return 0, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	observability.RecordDBMetric(ctx, a.metrics, entity+".page", time.Since(start))

	return total, nil
}
