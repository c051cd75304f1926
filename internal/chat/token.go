package chat

import (
	"strconv"
	"strings"
)

// Action is the closed set of inline-button actions. Tokens travel as
// "<action>_<vacancyID>"; navigation actions carry no id.
type Action string

const (
	ActionVacancyDetails Action = "select-vacancy-for-details"
	ActionApply          Action = "select-vacancy-to-apply"
	ActionEdit           Action = "select-vacancy-to-edit"
	ActionDelete         Action = "select-vacancy-to-delete"
	ActionCandidates     Action = "select-vacancy-for-candidates"
	ActionBackToMenu     Action = "navigate-back-to-menu"
	ActionBackToCatalog  Action = "navigate-back-to-catalog"
)

// Token encodes an action with its target vacancy id.
func Token(action Action, vacancyID int64) string {
	return string(action) + "_" + strconv.FormatInt(vacancyID, 10)
}

// ParseToken decodes callback data into a typed action. Unknown actions and
// malformed ids are reported as not-ok and silently ignored by the router.
func ParseToken(data string) (Action, int64, bool) {
	// telebot prefixes callback data with \f for buttons built through its
	// own registry; strip it defensively
	data = strings.TrimPrefix(data, "\f")

	head, rest, _ := strings.Cut(data, "_")

	switch Action(head) {
	case ActionBackToMenu, ActionBackToCatalog:
		return Action(head), 0, true
	case ActionVacancyDetails, ActionApply, ActionEdit, ActionDelete, ActionCandidates:
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return "", 0, false
		}
		return Action(head), id, true
	default:
		return "", 0, false
	}
}
