package build

import "errors"

var (
	ErrBuild               = errors.New("build failed")
	ErrPreflight           = errors.New("preflight check failed")
	ErrInstall             = errors.New("dependency installation failed")
	ErrCopy                = errors.New("copy failed")
	ErrPhase               = errors.New("illegal phase transition")
	ErrFileSystemOperation = errors.New("file system operation failed")
)
