package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// actionHeadings is the fixed key table of the input mapper.
var actionHeadings = map[core.Action]Heading{
	core.ActionUp:    HeadingUp,
	core.ActionDown:  HeadingDown,
	core.ActionLeft:  HeadingLeft,
	core.ActionRight: HeadingRight,
}

// HeadingForAction maps a directional action to a heading. Any other action
// reports false.
func HeadingForAction(a core.Action) (Heading, bool) {
	h, ok := actionHeadings[a]
	return h, ok
}
