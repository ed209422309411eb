package handler

import "fmt"

// FileAction enumerates the mutations accepted by the file action
// endpoint. Dispatch is an exhaustive switch per variant, not a
// string-keyed lookup.
type FileAction string

const (
	ActionRename  FileAction = "rename"
	ActionShare   FileAction = "share"
	ActionUnshare FileAction = "unshare"
)

// ParseFileAction validates an action label from a request body.
func ParseFileAction(s string) (FileAction, error) {
	switch a := FileAction(s); a {
	case ActionRename, ActionShare, ActionUnshare:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}
