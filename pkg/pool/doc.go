// Package pool samples values from variable pools: files named <name>.dat
// holding one JSON value per line, usually written by a previous run
// (see package projection). Blank lines are ignored.
//
//	s := pool.New(dir, sample.NewSource(),
//		pool.WithWrapper("ids", mongo.ObjectIDWrapper),
//	)
//	v, err := s.Sample(ctx, "ids")
//
// A pool is read on first use and cached for the lifetime of the Sampler.
// Missing files yield ErrPoolNotFound, files without usable lines ErrPoolEmpty.
package pool
