// Package projection saves parts of generated records for later runs.
//
// A Writer copies selected fields ("prop:name") of each record into
// <dir>/<name>.dat, one JSON value per line, which is the pool file format
// read back by "@name" templates. SaveIDs does the same for the ids a sink
// reported, producing the "ids" pool.
package projection
