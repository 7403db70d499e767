// Package engine evaluates directives and assembles records.
//
// An Evaluator maps one parsed template to one value. Its collaborators
// (human-data generator, hasher, pool sampler, random source, clock) are
// injected with options, so tests can run against a seeded source and a
// cheap hasher:
//
//	src := sample.NewSeededSource(1)
//	eval := engine.NewEvaluator(
//	    engine.WithSource(src),
//	    engine.WithHasher(hasher.NewBcrypt(hasher.WithCost(bcrypt.MinCost))),
//	    engine.WithPools(pool.New(modelDir, src)),
//	)
//	v, err := eval.Evaluate(ctx, "!#string{8,12}")
//
// A Generator compiles a model into a Plan once and evaluates it for every
// record of a batch. Records are generated concurrently with a bounded
// number of workers and returned in request order; the first failing field
// cancels the batch and Generate returns only the error.
package engine
