// Package mongo wraps the official MongoDB v2 driver with env-driven
// configuration (MONGODB_*), a retrying connect and a health check closure.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
