package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/client/flows"
)

// status is the prompt prefix: the current location, plus the time left
// before a verified email redirects to login.
func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := a.location.Path
	if path == "" {
		path = "/"
	}
	if a.verify != nil {
		if st := a.verify.Status(); st.State == flows.Verified && st.Remaining > 0 {
			return fmt.Sprintf("%s (login in %ds)", path, st.Remaining)
		}
	}
	return path
}

// Root greets the user, opens "/" (which lands on /login without a verified
// session) and runs the REPL on the app's reader.
func (a *App) Root(ctx context.Context) {
	say("Welcome to TrackIt (type 'help' for commands)")

	if err := a.Open(ctx, "/"); err != nil {
		say(fmt.Sprintf("could not open start page: %v", err))
	}

	runREPL(ctx, a, a.status, a.reader)
}
