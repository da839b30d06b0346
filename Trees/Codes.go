package Trees

// Code identifies one step or outcome of a forest operation.
type Code uint8

const (
	OK Code = iota
	InsertError
	RemoveError
	MergeErrorOrder
	MergeErrorEqualIds
	MergeErrorEmpty
	SplitErrorEmpty
	Searching
	Found
	NotFound
	SuccessfulDelete
	UnsuccessfulDelete
	SplitPerforming
	SplitSucceeded
	SplayPerforming
	ZigPerforming
	ZigDone
	ZigZagPerforming
	ZigZagDone
	ZigZigPerforming
	ZigZigDone
	MergePerforming
	SpineSearching
	SpineFound
	RemoveWillExecute
	RemoveWontExecute
	InsertionDone
	NewRootAssigned
	numCodes
)

var codeInfo = [numCodes]struct{ name, msg string }{
	OK:                 {"OK", "OK"},
	InsertError:        {"InsertError", "ERROR: This key already exists in the tree"},
	RemoveError:        {"RemoveError", "ERROR: This key doesn't exist in the tree"},
	MergeErrorOrder:    {"MergeErrorOrder", "ERROR: The maximum value of the first tree must be lower than the minimum value of the second one"},
	MergeErrorEqualIds: {"MergeErrorEqualIds", "ERROR: ID of the left tree must be != ID of the right one"},
	MergeErrorEmpty:    {"MergeErrorEmpty", "ERROR: Both trees must not be empty"},
	SplitErrorEmpty:    {"SplitErrorEmpty", "ERROR: The target tree is empty"},
	Searching:          {"Searching", "Searching for the vertex"},
	Found:              {"Found", "The value has been found"},
	NotFound:           {"NotFound", "The value hasn't been found"},
	SuccessfulDelete:   {"SuccessfulDelete", "The tree was deleted successfully"},
	UnsuccessfulDelete: {"UnsuccessfulDelete", "ERROR: At least one tree must remain"},
	SplitPerforming:    {"SplitPerforming", "Split is performing"},
	SplitSucceeded:     {"SplitSucceeded", "Split has been executed"},
	SplayPerforming:    {"SplayPerforming", "Splay is performing"},
	ZigPerforming:      {"ZigPerforming", "Zig is performing"},
	ZigDone:            {"ZigDone", "Zig has been executed"},
	ZigZagPerforming:   {"ZigZagPerforming", "Zig-zag is performing"},
	ZigZagDone:         {"ZigZagDone", "Zig-zag has been executed"},
	ZigZigPerforming:   {"ZigZigPerforming", "Zig-zig is performing"},
	ZigZigDone:         {"ZigZigDone", "Zig-zig has been executed"},
	MergePerforming:    {"MergePerforming", "Merge is performing"},
	SpineSearching:     {"SpineSearching", "Searching for the rightmost vertex of the left tree"},
	SpineFound:         {"SpineFound", "The rightmost vertex of the left tree has been found"},
	RemoveWillExecute:  {"RemoveWillExecute", "Remove will be executed"},
	RemoveWontExecute:  {"RemoveWontExecute", "Remove won't be executed: the vertex hasn't been found"},
	InsertionDone:      {"InsertionDone", "Insertion has been done"},
	NewRootAssigned:    {"NewRootAssigned", "There is a new root"},
}

func (c Code) String() string {
	if c < numCodes {
		return codeInfo[c].name
	}
	return "Code(?)"
}

// Message is a one-line status suitable for showing next to the animation.
func (c Code) Message() string {
	if c < numCodes {
		return codeInfo[c].msg
	}
	return ""
}

// IsError reports whether c is the advisory outcome of a rejected operation.
// The forest is unchanged after such an outcome apart from splaying.
func (c Code) IsError() bool {
	switch c {
	case InsertError, RemoveError, MergeErrorOrder, MergeErrorEqualIds,
		MergeErrorEmpty, SplitErrorEmpty, UnsuccessfulDelete:
		return true
	}
	return false
}

