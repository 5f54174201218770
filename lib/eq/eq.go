/*package eq is a simple package for telling whether two arrays are equal to
one another.*/
package eq

// Generic returns true if two arrays are the same type and have the same
// values and false otherwise. Only []int, []string, []uint64, []float64, and
// [][3]float64 are supported.
func Generic(x, y interface{}) bool {
	switch xx := x.(type) {
	case []int:
		yy, ok := y.([]int)
		if !ok { return false }
		return Ints(xx, yy)
	case []string:
		yy, ok := y.([]string)
		if !ok { return false }
		return Strings(xx, yy)
	case []uint64:
		yy, ok := y.([]uint64)
		if !ok { return false }
		return Uint64s(xx, yy)
	case []float64:
		yy, ok := y.([]float64)
		if !ok { return false }
		return Float64s(xx, yy)
	case [][3]float64:
		yy, ok := y.([][3]float64)
		if !ok { return false }
		return Vec64s(xx, yy)
	default:
		return false
	}
}

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Strings returns true if two []string arrays are the same and false
// otherwise.
func Strings(x, y []string) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Uint64s returns true if two []uint64 arrays are the same and false
// otherwise.
func Uint64s(x, y []uint64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Vec64s returns true if two [][3]float64 arrays are the same and false
// otherwise.
func Vec64s(x, y [][3]float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		for dim := 0; dim < 3; dim++ {
			if x[i][dim] != y[i][dim] { return false }
		}
	}
	return true
}
