package engine

// Official position-point table. Finishes below 8th score no placement
// points; kills always score one point each, uncapped.
var positionPointTable = map[int]int{
	1: 10,
	2: 6,
	3: 5,
	4: 4,
	5: 3,
	6: 2,
	7: 1,
	8: 1,
}

// PositionPoints returns the placement points for a finishing position.
// Positions outside the table (9th and below, or invalid values) score zero.
func PositionPoints(position int) int {
	return positionPointTable[position]
}

// ComputePoints converts a team's finishing position and kill count into
// tournament points. Exact integer arithmetic, no rounding.
func ComputePoints(position, kills int) int {
	return PositionPoints(position) + kills
}
