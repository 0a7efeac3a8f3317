package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// Page returns the page a navigation command switches to.
func (c Command) Page() (string, bool) {
	switch c.Name {
	case "conversations", "conv", "c":
		return pageConversations, true
	case "contacts", "ct":
		return pageContacts, true
	case "device", "env", "d":
		return pageDevice, true
	}
	return "", false
}

// Value parses the numeric argument of the dip and sp commands.
func (c Command) Value() (float32, error) {
	if c.Args == "" {
		return 0, fmt.Errorf("%s needs a value", c.Name)
	}
	v, err := strconv.ParseFloat(c.Args, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", c.Args)
	}
	return float32(v), nil
}
