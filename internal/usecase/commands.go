package usecase

import "strings"

type Command int

const (
	CommandLatest Command = iota
	CommandBrowse
	CommandExport
	CommandClear
	CommandEnable
	CommandDisable
)

// ParseCommand matches a message against the wishlist command surface.
// token is the command prefix, "!wishlist" by default. Anything that is not
// an exact command falls through to URL capture.
func ParseCommand(content, token string) (Command, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(content)))
	if len(fields) == 0 || fields[0] != strings.ToLower(token) {
		return 0, false
	}

	if len(fields) == 1 {
		return CommandLatest, true
	}
	if len(fields) > 2 {
		return 0, false
	}

	switch fields[1] {
	case "all":
		return CommandBrowse, true
	case "export":
		return CommandExport, true
	case "clear":
		return CommandClear, true
	case "on":
		return CommandEnable, true
	case "off":
		return CommandDisable, true
	}
	return 0, false
}
