package router

import "net/url"

const (
	ModeResetPassword = "resetPassword"
	ModeVerifyEmail   = "verifyEmail"

	UnsupportedActionMessage = "Invalid or unsupported action."
)

type ActionKind int

const (
	ActionUnsupported ActionKind = iota
	ActionResetPassword
	ActionVerifyEmail
)

// Action is the parsed query of an emailed auth link. Mode keeps the raw
// value so unsupported modes can still be reported.
type Action struct {
	Kind    ActionKind
	Mode    string
	OOBCode string
}

func ParseAction(q url.Values) Action {
	a := Action{Mode: q.Get("mode"), OOBCode: q.Get("oobCode")}
	switch a.Mode {
	case ModeResetPassword:
		a.Kind = ActionResetPassword
	case ModeVerifyEmail:
		a.Kind = ActionVerifyEmail
	default:
		a.Kind = ActionUnsupported
	}
	return a
}
