package game

import "fmt"

// epilogue renders the closing narrative. It is a fixed template keyed only
// on the accusation result; no generation call is involved.
func epilogue(accusedName, guiltyName string, won bool) string {
	if won {
		return fmt.Sprintf(
			"You lay out the last contradiction, and the room goes quiet.\n\n"+
				"%s stops arguing and starts calculating. The storm outside fades, "+
				"but the weight of the evidence doesn't. Logs, timelines — "+
				"all of it lines up in a single, sharp line pointing at them.\n\n"+
				"Security walks them out. The office hums back to life, one monitor at a time.",
			guiltyName)
	}
	return fmt.Sprintf(
		"You point the finger at %s, and the room tenses. "+
			"For a moment it almost fits — almost.\n\n"+
			"But the loose ends remain. Somewhere in the logs, in the access patterns, "+
			"in the off-by-one timestamp, %s slips away clean.\n\n"+
			"The storm passes. The case closes on paper, but not in your head.",
		accusedName, guiltyName)
}
