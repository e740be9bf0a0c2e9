package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
	"github.com/dmitrijs2005/idkeeper/internal/client/session"
	"github.com/dmitrijs2005/idkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and a confirmed password and
// creates the account. The new account is signed in on success.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	wallet, err := getSimpleText(a.reader, "Enter wallet address", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	u, err := a.authService.Register(ctx, services.RegisterInput{
		Email:           email,
		FullName:        fullName,
		WalletAddress:   wallet,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}

	a.success(fmt.Sprintf("Registered and signed in as %s", u.Email))
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.success(fmt.Sprintf("Signed in as %s", u.Email))
	return nil
}

// Logout forgets the local session. The server is not contacted.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.success("Signed out")
	return nil
}

// WhoAmI prints the cached session without contacting the server.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.authService.Session()
	if !s.Authenticated() {
		a.printf("Not signed in\n")
		return nil
	}

	a.printUser(*s.User)
	if exp, ok := session.TokenExpiry(s.Token); ok {
		a.field("Session expires", exp.Local().Format(time.RFC1123))
	}
	return nil
}

// Profile fetches the full profile and refreshes the cached user.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}

	a.printUser(p.Summary())
	a.field("Verifications", p.VerificationCount)
	a.field("Created", p.CreatedAt)
	a.field("Updated", p.UpdatedAt)
	return nil
}

// Rename changes the full name on the profile.
func (a *App) Rename(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter new full name", os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.authService.UpdateProfile(ctx, name)
	if err != nil {
		return err
	}

	a.success(fmt.Sprintf("Name changed to %s", u.FullName))
	return nil
}

// ChangePassword asks for the current password and a confirmed new one.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPw, err := getPassword(os.Stdout, "Current password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getPassword(os.Stdout, "New password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	confirm, err := getPassword(os.Stdout, "Confirm new password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := services.CheckPasswordConfirmation(newPw, confirm); err != nil {
		return err
	}
	if err := a.authService.ChangePassword(ctx, oldPw, newPw); err != nil {
		return err
	}

	a.success("Password changed. This session stays signed in.")
	return nil
}

// CheckToken asks the service whether token is valid and prints its claims.
// The current session is not affected.
func (a *App) CheckToken(ctx context.Context, token string) error {
	if token == "" {
		var err error
		if token, err = getSimpleText(a.reader, "Enter token", os.Stdout); err != nil {
			return err
		}
	}

	info, err := a.authService.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	a.success(info.Message)
	keys := make([]string, 0, len(info.Claims))
	for k := range info.Claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.field(k, info.Claims[k])
	}
	return nil
}

func (a *App) printUser(u models.UserSummary) {
	a.field("User ID", u.ID)
	a.field("Email", u.Email)
	a.field("Full name", u.FullName)
	a.field("Wallet", u.WalletAddress)
	a.field("Credentials", u.CredentialCount)
	verified := "no"
	if u.IsVerified {
		verified = "yes"
	}
	a.field("Verified", verified)
}
