package engine

// computeThinkTime derives a single hard time budget in milliseconds
// from UCI go-command limits, adapted from the teacher's soft/hard
// split: the search core here only accepts one deadline per call, so
// this collapses to the teacher's hard limit, sacrificing the
// soft-limit's "stop early once a stable best move settles" behavior
// for the simplicity of a single context.WithTimeout deadline.
func computeThinkTime(limits LimitsType, whiteToMove bool) (millis int) {
	const (
		movesToGoDefault = 50
		moveOverhead     = 20
	)

	if limits.MoveTime != 0 {
		return limits.MoveTime
	}
	if limits.Infinite || limits.Ponder {
		return 0
	}

	var mainTime, incTime int
	if whiteToMove {
		mainTime, incTime = limits.WhiteTime, limits.WhiteIncrement
	} else {
		mainTime, incTime = limits.BlackTime, limits.BlackIncrement
	}
	if mainTime == 0 && incTime == 0 {
		return 0
	}

	var movesToGo = movesToGoDefault
	if 0 < limits.MovesToGo && limits.MovesToGo < movesToGoDefault {
		movesToGo = limits.MovesToGo
	}

	var reserve = maxInt(2*moveOverhead, minInt(1000, mainTime/20))
	mainTime = maxInt(0, mainTime-reserve)

	var softLimit = mainTime/movesToGo + incTime
	var hardLimit = minInt(mainTime/2, softLimit*5)
	return hardLimit
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
