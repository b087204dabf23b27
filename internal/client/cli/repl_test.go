package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackit/internal/logging"
	"github.com/dmitrijs2005/trackit/internal/client/router"
)

type fakeExec struct {
	screen router.Screen
	calls  []string
	opIDs  []string
	err    error
}

func (f *fakeExec) rec(ctx context.Context, call string) error {
	f.calls = append(f.calls, call)
	f.opIDs = append(f.opIDs, logging.OpID(ctx))
	return f.err
}

func (f *fakeExec) Screen() router.Screen { return f.screen }
func (f *fakeExec) Open(ctx context.Context, target string) error {
	return f.rec(ctx, "open "+target)
}
func (f *fakeExec) Back(ctx context.Context) error     { return f.rec(ctx, "back") }
func (f *fakeExec) Home(ctx context.Context) error     { return f.rec(ctx, "home") }
func (f *fakeExec) Login(ctx context.Context) error    { return f.rec(ctx, "login") }
func (f *fakeExec) Register(ctx context.Context) error { return f.rec(ctx, "register") }
func (f *fakeExec) Forgot(ctx context.Context) error   { return f.rec(ctx, "forgot") }
func (f *fakeExec) Resend(ctx context.Context) error   { return f.rec(ctx, "resend") }
func (f *fakeExec) List(ctx context.Context) error     { return f.rec(ctx, "list") }
func (f *fakeExec) Search(ctx context.Context, term string) error {
	return f.rec(ctx, "search "+term)
}
func (f *fakeExec) Add(ctx context.Context) error              { return f.rec(ctx, "add") }
func (f *fakeExec) Edit(ctx context.Context, id string) error   { return f.rec(ctx, "edit "+id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.rec(ctx, "delete "+id) }
func (f *fakeExec) Logout(ctx context.Context) error            { return f.rec(ctx, "logout") }
func (f *fakeExec) ResetPassword(ctx context.Context) error     { return f.rec(ctx, "reset") }

func runScript(t *testing.T, f *fakeExec, script string) string {
	t.Helper()
	out := captureOutput(t)
	runREPL(context.Background(), f, func() string { return "/x" }, bufio.NewReader(strings.NewReader(script)))
	return out()
}

func TestREPL_DispatchesPerScreen(t *testing.T) {
	f := &fakeExec{screen: router.ScreenMain}

	out := runScript(t, f, "list\nsearch coffee beans\nedit a1\ndelete b2\nadd\nlogout\nexit\n")

	assert.Equal(t, []string{"list", "search coffee beans", "edit a1", "delete b2", "add", "logout"}, f.calls)
	assert.Contains(t, out, "trackit /x> ")
	assert.Contains(t, out, "Bye!")
}

func TestREPL_RejectsCommandsOfOtherScreens(t *testing.T) {
	f := &fakeExec{screen: router.ScreenLogin}

	out := runScript(t, f, "list\nlogin\n")

	assert.Equal(t, []string{"login"}, f.calls)
	assert.Contains(t, out, "Unknown command: list")
}

func TestREPL_LogoutOfferedOnLoginScreen(t *testing.T) {
	f := &fakeExec{screen: router.ScreenLogin}

	out := runScript(t, f, "help\nlogout\n")

	assert.Equal(t, []string{"logout"}, f.calls)
	assert.Contains(t, out, "Available commands: login, register, forgot, resend, logout, open, help, exit")
}

func TestREPL_OpenWorksEverywhere(t *testing.T) {
	f := &fakeExec{screen: router.ScreenNotFound}

	out := runScript(t, f, "open\nopen /login?x=1\nhome\n")

	assert.Equal(t, []string{"open /login?x=1", "home"}, f.calls)
	assert.Contains(t, out, "Usage: open <path|url>")
}

func TestREPL_Help(t *testing.T) {
	f := &fakeExec{screen: router.ScreenResetPassword}

	out := runScript(t, f, "help\nquit\n")

	assert.Contains(t, out, "Available commands: reset, back, open, help, exit")
	assert.Empty(t, f.calls)
}

func TestREPL_UsageAndErrors(t *testing.T) {
	f := &fakeExec{screen: router.ScreenMain, err: errors.New("boom")}

	out := runScript(t, f, "edit\ndelete\nlist\n\n")

	assert.Equal(t, []string{"list"}, f.calls)
	assert.Contains(t, out, "Usage: edit <id>")
	assert.Contains(t, out, "Usage: delete <id>")
	assert.Contains(t, out, "boom")
}

func TestREPL_EachCommandGetsOpID(t *testing.T) {
	f := &fakeExec{screen: router.ScreenLogin}

	runScript(t, f, "login\nregister\n")

	require.Len(t, f.opIDs, 2)
	assert.NotEmpty(t, f.opIDs[0])
	assert.NotEqual(t, f.opIDs[0], f.opIDs[1])
}

func TestREPL_StopsWhenContextDone(t *testing.T) {
	f := &fakeExec{screen: router.ScreenLogin}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	captureOutput(t)
	runREPL(ctx, f, func() string { return "/" }, bufio.NewReader(strings.NewReader("login\n")))

	assert.Empty(t, f.calls)
}
