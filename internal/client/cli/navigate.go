package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/client/flows"
	"github.com/dmitrijs2005/trackit/internal/client/router"
)

func (a *App) Screen() router.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.decision.Screen
}

// Location returns the location currently shown.
func (a *App) Location() router.Location {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

func (a *App) Open(ctx context.Context, target string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.navigate(ctx, target)
}

func (a *App) Back(ctx context.Context) error { return a.Open(ctx, router.PathLogin) }

func (a *App) Home(ctx context.Context) error { return a.Open(ctx, router.PathMain) }

// navigate resolves target against the current session, leaves the current
// screen and enters the new one. Callers hold a.mu.
func (a *App) navigate(ctx context.Context, target string) error {
	loc, err := router.ParseLocation(target)
	if err != nil {
		return err
	}
	final, d, err := router.Follow(a.auth.Session(), loc)
	if err != nil {
		return err
	}

	a.leaveScreen()
	a.location = final
	a.decision = d
	a.logger.Debug(ctx, "navigated", "requested", loc.Path, "location", final.String(), "screen", d.Screen.String())

	return a.enterScreen(ctx)
}

// leaveScreen disposes of the flow owned by the current screen. Callers
// hold a.mu.
func (a *App) leaveScreen() {
	if a.verify != nil {
		a.verify.Close()
		a.verify = nil
	}
	a.reset = nil
}

func (a *App) enterScreen(ctx context.Context) error {
	switch a.decision.Screen {
	case router.ScreenMain:
		say("Your expenses")
		return a.list(ctx)

	case router.ScreenLogin:
		say("Log in or create an account. Type 'help' for commands.")
		if p, ok := a.auth.Pending(); ok {
			say(fmt.Sprintf("Waiting for %s to be verified; 'resend' sends the email again.", p.Email))
		}

	case router.ScreenVerifyEmail:
		a.startVerification(ctx)

	case router.ScreenResetPassword:
		a.reset = flows.NewResetFlow(a.decision.Action, a.identity)
		if !a.reset.LinkValid() {
			say(flows.MsgResetLinkInvalid)
			return nil
		}
		say("Reset your password: type 'reset' to choose a new one.")

	case router.ScreenUnsupportedAction:
		say(router.UnsupportedActionMessage)

	case router.ScreenNotFound:
		say("Oops! Page not found. Type 'home' to go back.")
	}
	return nil
}

func (a *App) startVerification(ctx context.Context) {
	var flow *flows.VerifyFlow
	flow = flows.NewVerifyFlow(a.decision.Action, a.identity,
		flows.WithTicker(a.newTicker),
		flows.WithTickHandler(func(remaining int) {
			if remaining > 0 {
				say(fmt.Sprintf("Redirecting to login in %d seconds.", remaining))
			}
		}),
		flows.WithRedirect(func(path string) {
			// Runs on the countdown goroutine, which must not wait on a.mu.
			go a.redirectFrom(ctx, flow, path)
		}),
	)
	a.verify = flow

	say("Verifying your email address...")
	st := flow.Run(ctx)

	switch st.State {
	case flows.Verified:
		say(st.Message)
		say(fmt.Sprintf("Redirecting to login in %d seconds. Type 'back' to go now.", st.Remaining))
	case flows.VerifyFailed:
		say(st.Message)
		say("The link is invalid or expired. Type 'back' to return to login.")
	default:
		say("Verification Failed")
		say(st.Message)
	}
}

// redirectFrom navigates to path unless the user already left the screen
// that owned flow.
func (a *App) redirectFrom(ctx context.Context, flow *flows.VerifyFlow, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.verify != flow {
		return
	}
	if err := a.navigate(ctx, path); err != nil {
		say(err.Error())
	}
}
