package export

import "github.com/atotto/clipboard"

// ToClipboard places an exported artifact on the system clipboard, so a
// schedule or page JSON can be pasted straight into another tool.
func ToClipboard(content string) error {
	return clipboard.WriteAll(content)
}
