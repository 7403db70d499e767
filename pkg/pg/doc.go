// Package pg connects to PostgreSQL with pgx/v5 and stores generated records.
//
// Config is read from PG_* environment variables. Connect retries the initial
// pool creation and ping. Sink writes every record as a JSONB document into
// a two-column table (id uuid, doc jsonb) using COPY, creating the table on
// demand, and returns the generated row ids. UUIDWrapper converts pooled id
// strings back to uuid.UUID values.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	sink := pg.NewSink(pool, pg.WithCreateTables(true))
//	ids, err := sink.InsertMany(ctx, "users", records)
package pg
