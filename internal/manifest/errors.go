package manifest

import "errors"

var (
	ErrPlan     = errors.New("invalid plan")
	ErrManifest = errors.New("invalid requirements manifest")
	ErrEnvFile  = errors.New("invalid environment file")
)
