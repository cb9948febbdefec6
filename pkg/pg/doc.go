// Package pg bootstraps PostgreSQL access with pgx/v5: a retrying pool
// constructor, goose migrations from an embedded filesystem, a transaction
// helper, a health check closure and error classifiers.
//
// # Usage
//
//	cfg, _ := config.Load[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, log); err != nil {
//	    return err
//	}
//
//	err = pg.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    _, err := tx.Exec(ctx, "UPDATE ...")
//	    return err
//	})
//
// Use IsNotFoundError and IsDuplicateKeyError to translate driver errors into
// domain errors at the repository boundary.
package pg
