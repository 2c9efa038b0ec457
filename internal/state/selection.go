package state

// NoSelection is the selection sentinel for an empty list.
const NoSelection = -1

// ClampIndex clamps a desired selection index into [0, length-1], or
// returns NoSelection when the list is empty. Applied after every list
// replacement and every keyboard move so the selection never points past
// the end of a shrunk list.
func ClampIndex(desired, length int) int {
	if length <= 0 {
		return NoSelection
	}
	if desired < 0 {
		return 0
	}
	if desired >= length {
		return length - 1
	}
	return desired
}
