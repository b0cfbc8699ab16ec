package datasetgen

import "errors"

var (
	errZipfParams  = errors.New("datasetgen: zipf s must be >1 and v must be >=1")
	errUnknownDist = errors.New("datasetgen: unknown distribution")
)
