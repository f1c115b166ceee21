package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// SQLiteStore persists analysis runs using modernc.org/sqlite. A user
// holds at most one run: saving replaces any prior rows in the same
// transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS calc_runs (
	run_id     INTEGER PRIMARY KEY AUTOINCREMENT,
	user_key   TEXT NOT NULL UNIQUE,
	run_year   INTEGER NOT NULL,
	start_year INTEGER NOT NULL,
	distribution        TEXT NOT NULL,
	annuity_factor_mult TEXT NOT NULL,
	base_duration       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS retire_yr_data (
	run_id         INTEGER NOT NULL REFERENCES calc_runs(run_id) ON DELETE CASCADE,
	conv_group_num INTEGER NOT NULL,
	year           DATE NOT NULL,
	age            INTEGER NOT NULL,
	ss_benefit     TEXT NOT NULL,
	trad_dist      TEXT NOT NULL,
	roth_dist      TEXT NOT NULL,
	trad_savings   TEXT NOT NULL,
	roth_savings   TEXT NOT NULL,
	taxable_ss     TEXT NOT NULL,
	pct_ss_taxed   TEXT NOT NULL,
	taxable_income TEXT NOT NULL,
	fed_tax        TEXT NOT NULL,
	mtr            TEXT NOT NULL,
	mtr_adj        TEXT NOT NULL,
	after_tax_dist TEXT NOT NULL,
	atcf           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS roth_conversions (
	run_id          INTEGER NOT NULL REFERENCES calc_runs(run_id) ON DELETE CASCADE,
	conv_group_num  INTEGER NOT NULL,
	incremental     INTEGER NOT NULL DEFAULT 0,
	tax_rate_bucket TEXT NOT NULL,
	conv_amt        TEXT NOT NULL,
	conv_tax        TEXT NOT NULL,
	conv_tax_rate   TEXT NOT NULL,
	dist_mtr_pre_conv  TEXT NOT NULL,
	dist_mtr_post_conv TEXT NOT NULL,
	distributions_total_pre_conv  TEXT NOT NULL,
	distributions_total_post_conv TEXT NOT NULL,
	total_after_tax_dist_chg_amt  TEXT NOT NULL,
	conv_return_multiple TEXT NOT NULL,
	conv_irr             TEXT NOT NULL,
	conv_duration        TEXT NOT NULL,
	synthetic_roth_cont  TEXT NOT NULL,
	tax_rate_arb_amt     TEXT NOT NULL,
	conv_dist_tax        TEXT NOT NULL,
	conv_dist_tax_rate   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_retire_yr_data_run ON retire_yr_data(run_id, conv_group_num);
CREATE INDEX IF NOT EXISTS idx_roth_conversions_run ON roth_conversions(run_id, incremental, conv_group_num);
`

// Migrate creates the schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun stores a run for userKey, replacing any previous run in the
// same transaction. Readers never observe a partially replaced run.
func (s *SQLiteStore) SaveRun(ctx context.Context, userKey string, result *domain.RunResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin save run")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM calc_runs WHERE user_key = ?`, userKey); err != nil {
		return 0, eris.Wrap(err, "sqlite: delete prior run")
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO calc_runs (user_key, run_year, start_year, distribution, annuity_factor_mult, base_duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userKey, result.RunYear, result.StartYear,
		result.Distribution.String(), result.AnnuityFactorMultiple.String(), result.BaseDuration.String(),
		time.Now().UTC())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert run")
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: run id")
	}

	yearStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO retire_yr_data (
			run_id, conv_group_num, year, age, ss_benefit, trad_dist, roth_dist,
			trad_savings, roth_savings, taxable_ss, pct_ss_taxed, taxable_income,
			fed_tax, mtr, mtr_adj, after_tax_dist, atcf
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare year insert")
	}
	defer yearStmt.Close()

	for _, y := range result.Years {
		if _, err := yearStmt.ExecContext(ctx,
			runID, y.GroupNum, y.Date.Format("2006-01-02"), y.Age,
			y.SSBenefit.String(), y.TraditionalDistribution.String(), y.RothDistribution.String(),
			y.TraditionalSavings.String(), y.RothSavings.String(),
			y.TaxableSS.String(), y.PctSSTaxed.String(), y.TaxableIncome.String(),
			y.FederalTax.String(), y.MarginalRate.String(), y.AdjustedMarginalRate.String(),
			y.AfterTaxDistribution.String(), y.AfterTaxCashFlow.String(),
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert year row group %d year %d", y.GroupNum, y.Date.Year())
		}
	}

	convStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roth_conversions (
			run_id, conv_group_num, incremental, tax_rate_bucket, conv_amt, conv_tax,
			conv_tax_rate, dist_mtr_pre_conv, dist_mtr_post_conv,
			distributions_total_pre_conv, distributions_total_post_conv,
			total_after_tax_dist_chg_amt, conv_return_multiple, conv_irr,
			conv_duration, synthetic_roth_cont, tax_rate_arb_amt,
			conv_dist_tax, conv_dist_tax_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare conversion insert")
	}
	defer convStmt.Close()

	insertMetrics := func(rows []domain.ConversionMetrics, incremental bool) error {
		flag := 0
		if incremental {
			flag = 1
		}
		for _, m := range rows {
			if _, err := convStmt.ExecContext(ctx,
				runID, m.GroupNum, flag, m.TaxRateBucket.String(), m.ConversionAmount.String(), m.ConversionTax.String(),
				m.ConversionTaxRate.String(), m.PreConversionMTR.String(), m.PostConversionMTR.String(),
				m.PreDistributionsTotal.String(), m.PostDistributionsTotal.String(),
				m.AfterTaxChange.String(), m.ReturnMultiple.String(), m.IRR.String(),
				m.Duration.String(), m.SyntheticContribution.String(), m.TaxRateArbitrage.String(),
				m.DistributionTaxChange.String(), m.DistributionTaxRate.String(),
			); err != nil {
				return eris.Wrapf(err, "sqlite: insert conversion row group %d", m.GroupNum)
			}
		}
		return nil
	}
	if err := insertMetrics(result.Conversions, false); err != nil {
		return 0, err
	}
	if err := insertMetrics(result.Incrementals, true); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit save run")
	}
	return runID, nil
}

// RunSummary is the stored run header.
type RunSummary struct {
	RunID     int64
	UserKey   string
	RunYear   int
	StartYear int
	CreatedAt time.Time
}

// LookupRun returns the stored run header for userKey, or sql.ErrNoRows
// wrapped when none exists.
func (s *SQLiteStore) LookupRun(ctx context.Context, userKey string) (*RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, user_key, run_year, start_year, created_at
		FROM calc_runs WHERE user_key = ?`, userKey)

	var summary RunSummary
	if err := row.Scan(&summary.RunID, &summary.UserKey, &summary.RunYear, &summary.StartYear, &summary.CreatedAt); err != nil {
		return nil, eris.Wrapf(err, "sqlite: lookup run for %s", userKey)
	}
	return &summary, nil
}

// LoadConversions returns the stored cumulative or incremental metric
// rows for a run, ordered by group.
func (s *SQLiteStore) LoadConversions(ctx context.Context, runID int64, incremental bool) ([]domain.ConversionMetrics, error) {
	flag := 0
	if incremental {
		flag = 1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT conv_group_num, tax_rate_bucket, conv_amt, conv_tax, conv_tax_rate,
			dist_mtr_pre_conv, dist_mtr_post_conv,
			distributions_total_pre_conv, distributions_total_post_conv,
			total_after_tax_dist_chg_amt, conv_return_multiple, conv_irr,
			conv_duration, synthetic_roth_cont, tax_rate_arb_amt,
			conv_dist_tax, conv_dist_tax_rate
		FROM roth_conversions
		WHERE run_id = ? AND incremental = ?
		ORDER BY conv_group_num`, runID, flag)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query conversions")
	}
	defer rows.Close()

	var out []domain.ConversionMetrics
	for rows.Next() {
		var m domain.ConversionMetrics
		targets := []*decimal.Decimal{
			&m.TaxRateBucket, &m.ConversionAmount, &m.ConversionTax, &m.ConversionTaxRate,
			&m.PreConversionMTR, &m.PostConversionMTR,
			&m.PreDistributionsTotal, &m.PostDistributionsTotal,
			&m.AfterTaxChange, &m.ReturnMultiple, &m.IRR,
			&m.Duration, &m.SyntheticContribution, &m.TaxRateArbitrage,
			&m.DistributionTaxChange, &m.DistributionTaxRate,
		}
		raw := make([]string, len(targets))
		dest := make([]any, 0, len(targets)+1)
		dest = append(dest, &m.GroupNum)
		for i := range raw {
			dest = append(dest, &raw[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan conversion row")
		}
		for i, dst := range targets {
			d, err := decimal.NewFromString(raw[i])
			if err != nil {
				return nil, eris.Wrapf(err, "sqlite: parse decimal %q", raw[i])
			}
			*dst = d
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate conversions")
}

// LoadYears returns the stored year rows for one conversion group.
func (s *SQLiteStore) LoadYears(ctx context.Context, runID int64, groupNum int) ([]domain.YearlyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT conv_group_num, year, age, ss_benefit, trad_dist, roth_dist,
			trad_savings, roth_savings, taxable_ss, pct_ss_taxed, taxable_income,
			fed_tax, mtr, mtr_adj, after_tax_dist, atcf
		FROM retire_yr_data
		WHERE run_id = ? AND conv_group_num = ?
		ORDER BY year`, runID, groupNum)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query year rows")
	}
	defer rows.Close()

	var out []domain.YearlyRecord
	for rows.Next() {
		var (
			r       domain.YearlyRecord
			dateStr string
			raw     [13]string
		)
		if err := rows.Scan(&r.GroupNum, &dateStr, &r.Age,
			&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5], &raw[6],
			&raw[7], &raw[8], &raw[9], &raw[10], &raw[11], &raw[12]); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan year row")
		}
		r.Date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: parse year date %q", dateStr)
		}
		targets := []*decimal.Decimal{
			&r.SSBenefit, &r.TraditionalDistribution, &r.RothDistribution,
			&r.TraditionalSavings, &r.RothSavings, &r.TaxableSS, &r.PctSSTaxed,
			&r.TaxableIncome, &r.FederalTax, &r.MarginalRate, &r.AdjustedMarginalRate,
			&r.AfterTaxDistribution, &r.AfterTaxCashFlow,
		}
		for i, dst := range targets {
			d, err := decimal.NewFromString(raw[i])
			if err != nil {
				return nil, eris.Wrapf(err, "sqlite: parse decimal %q", raw[i])
			}
			*dst = d
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate year rows")
}
