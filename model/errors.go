package model

import "errors"

var (
	// ErrStatusRegression is returned when the data source reports a phase
	// earlier than the one already reached; the last valid status is kept.
	ErrStatusRegression = errors.New("computation status moved backward")

	// ErrUnknownDep is returned when a dependency lookup does not match any
	// scanned row.
	ErrUnknownDep = errors.New("unknown dependency")

	// ErrNoGoMod is returned when the target directory has no go.mod file.
	ErrNoGoMod = errors.New("no go.mod in target directory")
)
