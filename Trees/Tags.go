package Trees

// Tag is the display role of a node in one event. Renderers map tags to
// colours. TagHideThis, TagSplitLeft and TagSplitRight mark the node a split
// pivots on; a TagHideThis node is about to disappear and should not be drawn.
type Tag uint8

const (
	TagRegular Tag = iota
	TagOnPath
	TagFound
	TagNotFound
	TagXVertex
	TagPVertex
	TagGVertex
	TagASubtree
	TagBSubtree
	TagCSubtree
	TagDSubtree
	TagSplayVertex
	TagDoRemove
	TagDontRemove
	TagHideThis
	TagSplitLeft
	TagSplitRight
	TagInserted
	TagNewRoot
	numTags
)

var tagNames = [numTags]string{
	"Regular", "OnPath", "Found", "NotFound", "XVertex", "PVertex", "GVertex",
	"ASubtree", "BSubtree", "CSubtree", "DSubtree", "SplayVertex", "DoRemove",
	"DontRemove", "HideThis", "SplitLeft", "SplitRight", "Inserted", "NewRoot",
}

func (t Tag) String() string {
	if t < numTags {
		return tagNames[t]
	}
	return "Tag(?)"
}

// overlay holds the tags of the current operation phase. It is never part of
// the arena, so clearing it is the only reset needed.
type overlay[S comparable] map[S]Tag

// mark i with t. The nil index is ignored.
func (o overlay[S]) mark(i S, t Tag) {
	var nilIdx S
	if i != nilIdx {
		o[i] = t
	}
}

func (o overlay[S]) reset() {
	clear(o)
}
