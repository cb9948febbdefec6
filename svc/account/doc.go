// Package account defines the account record and its storage.
//
// Three Repository implementations are provided: MemoryRepository for tests
// and local runs, PostgresRepository (pgx, row locks, goose migrations in
// Migrations) and MongoRepository (optimistic versioning). Every change to an
// existing account goes through Repository.Update, which runs a callback on the
// loaded record and persists the result atomically:
//
//	_, err := repo.Update(ctx, identity, func(a *account.Account) error {
//		a.OTPVerified = true
//		return nil
//	})
package account
