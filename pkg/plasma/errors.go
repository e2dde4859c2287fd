package plasma

import "errors"

var (
	ErrInvalidHash         = errors.New("invalid transaction hash")
	ErrTxNotFound          = errors.New("transaction not found")
	ErrTxFailed            = errors.New("transaction reverted")
	ErrNotCheckpointed     = errors.New("burn transaction has not been checkpointed as yet")
	ErrLogNotFound         = errors.New("log not found in receipt")
	ErrHeaderBlockNotFound = errors.New("header block not found")
	ErrNotInitialized      = errors.New("client not initialized")
	ErrEmptyResult         = errors.New("empty contract call result")
)
