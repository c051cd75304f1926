package dialog

import (
	"context"
	"errors"

	"vacancy-bot/internal/chat"
)

// Input is one qualifying message fed into an active flow.
type Input struct {
	Text     string
	Photo    *chat.Attachment
	Document *chat.Attachment
}

// retryError rejects the input and re-prompts without advancing the step.
type retryError struct {
	prompt string
}

func (e *retryError) Error() string {
	return "input rejected: " + e.prompt
}

// errTargetGone aborts a flow whose target vacancy vanished mid-dialog.
var errTargetGone = errors.New("target vacancy no longer exists")

// stepDef is one prompt/validate/assign unit of a flow. apply either records
// the collected value on the state or rejects the input with a retryError.
type stepDef struct {
	step   Step
	prompt string
	apply  func(ctx context.Context, st *State, in Input) error
}

// flowDef is an ordered step sequence plus the terminal action. finish runs
// after the last step's apply succeeded and is responsible for persisting
// the result and removing the dialog state.
type flowDef struct {
	steps  []stepDef
	finish func(ctx context.Context, chatID int64, st *State) error
}

// advance feeds one input into the flow: validation failure re-prompts and
// keeps the step, success moves strictly forward, the last step finishes.
func advance(ctx context.Context, msgr chat.Messenger, states *Manager, ev chat.Event, def flowDef, st *State, in Input) error {
	idx := -1
	for i, s := range def.steps {
		if s.step == st.Step {
			idx = i
			break
		}
	}
	if idx < 0 {
		// state does not belong to this flow definition; drop it
		states.Delete(ev.UserID)
		return nil
	}

	if err := def.steps[idx].apply(ctx, st, in); err != nil {
		var retry *retryError
		if errors.As(err, &retry) {
			return msgr.SendText(ctx, ev.ChatID, retry.prompt, nil)
		}
		return err
	}

	if idx == len(def.steps)-1 {
		return def.finish(ctx, ev.ChatID, st)
	}

	st.Step = def.steps[idx+1].step
	states.Touch(ev.UserID)

	return msgr.SendText(ctx, ev.ChatID, def.steps[idx+1].prompt, nil)
}
