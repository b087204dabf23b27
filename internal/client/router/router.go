// Package router decides what the client shows for a location given the
// current session. It is pure: no I/O, no session mutation.
package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/trackit/internal/client/session"
)

const (
	PathMain          = "/"
	PathLogin         = "/login"
	PathAuthAction    = "/auth/action"
	PathVerifyEmail   = "/verify-email"
	PathResetPassword = "/reset-password"

	MaxRedirects = 4
)

var ErrRedirectLoop = errors.New("too many redirects")

type Screen int

const (
	ScreenNone Screen = iota
	ScreenMain
	ScreenLogin
	ScreenVerifyEmail
	ScreenResetPassword
	ScreenUnsupportedAction
	ScreenNotFound
)

var screenNames = map[Screen]string{
	ScreenNone:              "none",
	ScreenMain:              "main",
	ScreenLogin:             "login",
	ScreenVerifyEmail:       "verify-email",
	ScreenResetPassword:     "reset-password",
	ScreenUnsupportedAction: "unsupported-action",
	ScreenNotFound:          "not-found",
}

func (s Screen) String() string {
	if n, ok := screenNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Location is the path and query of a navigation target.
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation accepts a path with an optional query ("/login",
// "/auth/action?mode=verifyEmail&oobCode=x") or a full URL such as the link
// in a verification email. Scheme, host and fragment are dropped.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{Path: PathMain, Query: url.Values{}}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	path := u.Path
	if path == "" {
		path = PathMain
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return Location{Path: path, Query: u.Query()}, nil
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Decision is either a screen to render or a path to redirect to. When
// Redirect is non-empty Screen is ScreenNone. Action is set for screens
// reached through the auth action handler.
type Decision struct {
	Screen   Screen
	Redirect string
	Action   Action
}

func render(s Screen) Decision { return Decision{Screen: s} }
func redirect(path string) Decision { return Decision{Redirect: path} }

func (d Decision) IsRedirect() bool { return d.Redirect != "" }

// Resolve applies the routing table; the first matching route wins.
func Resolve(view session.Snapshot, loc Location) Decision {
	verified := view.LoggedIn && view.EmailVerified

	switch loc.Path {
	case PathMain:
		if verified {
			return render(ScreenMain)
		}
		return redirect(PathLogin)

	case PathLogin:
		if verified {
			return redirect(PathMain)
		}
		return render(ScreenLogin)

	case PathAuthAction:
		action := ParseAction(loc.Query)
		switch action.Kind {
		case ActionResetPassword:
			return Decision{Screen: ScreenResetPassword, Action: action}
		case ActionVerifyEmail:
			return Decision{Screen: ScreenVerifyEmail, Action: action}
		default:
			return Decision{Screen: ScreenUnsupportedAction, Action: action}
		}

	case PathVerifyEmail:
		return Decision{Screen: ScreenVerifyEmail, Action: ParseAction(loc.Query)}

	case PathResetPassword:
		if view.LoggedIn {
			return redirect(PathMain)
		}
		return Decision{Screen: ScreenResetPassword, Action: ParseAction(loc.Query)}
	}

	return render(ScreenNotFound)
}

// Follow resolves loc and any redirects until a screen is rendered. It
// returns the final location alongside the decision.
func Follow(view session.Snapshot, loc Location) (Location, Decision, error) {
	for hop := 0; hop <= MaxRedirects; hop++ {
		d := Resolve(view, loc)
		if !d.IsRedirect() {
			return loc, d, nil
		}
		next, err := ParseLocation(d.Redirect)
		if err != nil {
			return loc, d, err
		}
		loc = next
	}
	return loc, Decision{}, fmt.Errorf("%w: stopped at %s", ErrRedirectLoop, loc)
}
