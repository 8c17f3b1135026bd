package value_objects

import "fmt"

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionAssign Action = "assign"
	ActionExport Action = "export"
	// ActionAll matches any action in a policy row.
	ActionAll Action = "*"
)

var validActions = map[Action]bool{
	ActionRead:   true,
	ActionWrite:  true,
	ActionDelete: true,
	ActionAssign: true,
	ActionExport: true,
	ActionAll:    true,
}

func NewAction(action string) (Action, error) {
	if action == "" {
		return "", fmt.Errorf("action cannot be empty")
	}
	a := Action(action)
	if !validActions[a] {
		return "", fmt.Errorf("invalid action: %s", action)
	}
	return a, nil
}

func (a Action) String() string {
	return string(a)
}
