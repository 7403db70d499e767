// Package mongo connects to MongoDB and persists generated records.
//
// Connection settings come from MONGODB_* environment variables (see Config);
// New retries the initial connect and ping before giving up. Sink inserts
// records in ordered batches and reports the ids MongoDB stored, which the
// CLI can save as the "ids" pool for later runs. ObjectIDWrapper converts
// such pooled hex ids back to ObjectIDs when they are referenced again.
//
// # Usage
//
//	cfg := mongo.Config{ConnectionURL: mongo.HostURL("localhost", "test"), Database: "test", RetryAttempts: 1}
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	sink := mongo.NewSink(mongo.DatabaseInserter(db))
//	ids, err := sink.InsertMany(ctx, "users", records)
//
// # Error Handling
//
// Failures wrap the package sentinels (ErrFailedToConnectToMongo,
// ErrInsertFailed, ...) and can be matched with errors.Is.
package mongo
