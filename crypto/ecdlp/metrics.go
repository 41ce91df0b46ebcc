package ecdlp

import "github.com/ethereum/go-ethereum/metrics"

var (
	tableBuildTimer = metrics.NewRegisteredTimer("uno/ecdlp/build", nil)
	tableLoadMeter  = metrics.NewRegisteredMeter("uno/ecdlp/load", nil)

	solveTimer     = metrics.NewRegisteredTimer("uno/ecdlp/solve", nil)
	solveHitMeter  = metrics.NewRegisteredMeter("uno/ecdlp/solve/hit", nil)
	solveMissMeter = metrics.NewRegisteredMeter("uno/ecdlp/solve/miss", nil)
	collisionMeter = metrics.NewRegisteredMeter("uno/ecdlp/collision", nil)

	cacheHitMeter  = metrics.NewRegisteredMeter("uno/ecdlp/cache/hit", nil)
	cacheMissMeter = metrics.NewRegisteredMeter("uno/ecdlp/cache/miss", nil)
)
