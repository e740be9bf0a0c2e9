package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/fatih/color"
)

var (
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	noticeColor = color.New(color.FgCyan)
	labelColor  = color.New(color.Bold)
)

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) field(label string, value any) {
	_, _ = labelColor.Fprintf(a.out, "  %-18s", label+":")
	_, _ = fmt.Fprintln(a.out, value)
}

func (a *App) success(msg string) {
	_, _ = okColor.Fprintln(a.out, msg)
}

func (a *App) warn(msg string) {
	_, _ = warnColor.Fprintln(a.out, msg)
}

func (a *App) notice(msg string) {
	_, _ = noticeColor.Fprintln(a.out, msg)
}

// HandleError shows err to the user. The transport has already cleared a
// rejected session; this only tells the user when they ended up signed out.
func (a *App) HandleError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, io.EOF) {
		return
	}

	a.log.Debug(ctx, "command failed", "error", err)
	_, _ = errColor.Fprintln(a.out, client.Message(err))

	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		if !a.isLoggedIn() {
			a.notice("You are signed out. Use 'login' to continue.")
		}
	case errors.Is(err, client.ErrNetwork):
		a.setMode(ModeOffline)
	}
}

var kinds = []error{
	client.ErrValidation, client.ErrInvalidCredentials, client.ErrUnauthenticated,
	client.ErrNotFound, client.ErrConflict, client.ErrNetwork, client.ErrServer,
}

// sameKind reports whether both errors carry the same failure kind.
func sameKind(a, b error) bool {
	for _, k := range kinds {
		if errors.Is(a, k) && errors.Is(b, k) {
			return true
		}
	}
	return false
}
