package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/rcgo/roth-conversion-calculator/internal/store"
)

// openStore opens the configured SQLite store and applies migrations.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(settings.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
