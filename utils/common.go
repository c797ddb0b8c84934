package utils

const (
	NODETOL   = 1.e-12 // Relative tolerance for geometric predicates
	ENERGYTOL = 1.e-10 // Relative round-off allowed in the energy convexity check
)
