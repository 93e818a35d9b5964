package utils

const (
	NODETOL = 1.e-12
	// GEOMTOL is the length below which a vector is treated as zero
	GEOMTOL = 1.e-9
	// MERGETOL is the distance used to weld coincident vertices after a collapse
	MERGETOL = 1.e-4
)
