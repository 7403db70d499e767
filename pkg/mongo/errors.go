package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrMissingDatabase        = errors.New("mongo database name is required")
	ErrMissingCollection      = errors.New("mongo collection name is required")
	ErrInsertFailed           = errors.New("mongo insert failed")
	ErrInvalidObjectID        = errors.New("invalid object id")
)
