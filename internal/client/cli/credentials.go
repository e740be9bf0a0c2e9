package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
	"github.com/dmitrijs2005/idkeeper/internal/client/workflow"
)

var getMultiline = GetMultiline

// Create prompts for a credential type and a JSON body and creates the
// credential, reporting how it was anchored.
func (a *App) Create(ctx context.Context) error {
	credType, err := getSimpleText(a.reader, "Enter credential type (e.g. passport, degree)", os.Stdout)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Enter credential data as a JSON object", os.Stdout)
	if err != nil {
		return err
	}

	data, err := services.ParseCredentialData(text)
	if err != nil {
		return err
	}

	res, err := a.flows.NewCreateFlow().Run(ctx, credType, data)
	if err != nil {
		return err
	}

	out := res.Outcome
	a.success("Credential created")
	a.field("Credential ID", out.CredentialID)
	a.field("Hash", out.CredentialHash)

	switch tx := out.BlockchainTx; {
	case tx == nil:
		a.warn("Not anchored on a blockchain")
	default:
		a.field("Transaction", tx.TxHash)
		a.field("Block", tx.BlockNumber)
		a.field("Gas used", tx.GasUsed)
		if tx.Succeeded() {
			a.field("Receipt status", "success")
		} else {
			a.field("Receipt status", fmt.Sprintf("failed (%d)", tx.Status))
			a.warn("The anchoring transaction failed; the credential is not recorded on chain")
		}
		if tx.Simulated {
			a.warn("Anchored by a SIMULATED transaction: no live blockchain was involved")
		}
	}
	return nil
}

// List prints the signed-in user's credentials in server order.
func (a *App) List(ctx context.Context) error {
	list, err := a.credService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No credentials\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tHASH\tCREATED\tACCESSES")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.CredentialID, c.CredentialType, c.BlockchainHash, c.CreatedAt, c.AccessCount)
	}
	return tw.Flush()
}

// Show prints one credential including its data, when the service returns it.
func (a *App) Show(ctx context.Context, id string) error {
	id, err := a.argOrPrompt(id, "Enter credential ID")
	if err != nil {
		return err
	}

	d, err := a.credService.Get(ctx, id)
	if err != nil {
		return err
	}

	a.field("Credential ID", d.CredentialID)
	a.field("Type", d.CredentialType)
	a.field("Hash", d.BlockchainHash)
	a.field("Created", d.CreatedAt)
	a.field("Accesses", d.AccessCount)
	if len(d.CredentialData) > 0 {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, d.CredentialData, "  ", "  "); err != nil {
			pretty.Reset()
			pretty.Write(d.CredentialData)
		}
		a.printf("  Data:\n  %s\n", pretty.String())
	}
	return nil
}

// Revoke revokes a credential after the user types "yes".
func (a *App) Revoke(ctx context.Context, id string) error {
	id, err := a.argOrPrompt(id, "Enter credential ID")
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Revoking %s cannot be undone. Type 'yes' to confirm", id), os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		a.printf("Cancelled\n")
		return nil
	}

	if err := a.credService.Revoke(ctx, id); err != nil {
		return err
	}
	a.success("Credential revoked")
	return nil
}

// Verify checks a credential hash and its on-chain proof.
func (a *App) Verify(ctx context.Context, hash string) error {
	hash, err := a.argOrPrompt(hash, "Enter credential hash")
	if err != nil {
		return err
	}

	flow := a.flows.NewVerifyFlow()
	res, err := flow.Run(ctx, hash)
	if err != nil {
		return err
	}

	v := res.Verification
	if v.Valid {
		a.success("Credential is VALID")
	} else {
		a.warn("Credential is NOT valid (it may have been revoked)")
	}
	a.field("Type", v.CredentialType)
	a.field("Hash", v.BlockchainHash)
	a.field("Created", v.CreatedAt)
	if bv := v.BlockchainVerification; bv != nil {
		a.field("On-chain check", fmt.Sprintf("valid=%t source=%s", bv.Valid, bv.Source))
	}

	if flow.State() == workflow.StateVerifiedWithProof {
		p := res.Proof.Proof
		a.field("Owner", p.OwnerAddress)
		a.field("Contract", p.ContractAddress)
		a.field("Network", p.Network)
		a.field("Verified on chain", p.VerifiedOnChain)
		return nil
	}
	a.warn(res.ProofNote)
	return nil
}

// Dashboard shows the profile and the credential list side by side. Either
// half may fail on its own.
func (a *App) Dashboard(ctx context.Context) error {
	d := a.flows.Dashboard(ctx)

	a.notice("Profile")
	if d.ProfileErr != nil {
		a.HandleError(ctx, d.ProfileErr)
	} else {
		a.printUser(d.Profile.Summary())
		a.field("Verifications", d.Profile.VerificationCount)
	}

	a.notice("Credentials")
	if d.CredentialsErr != nil {
		// the same failure was already reported for the profile
		if d.ProfileErr == nil || !sameKind(d.ProfileErr, d.CredentialsErr) {
			a.HandleError(ctx, d.CredentialsErr)
		}
		return nil
	}
	a.printCredentialLines(d.Credentials)
	return nil
}

// Chain prints the service's blockchain connection status.
func (a *App) Chain(ctx context.Context) error {
	st, err := a.credService.BlockchainStatus(ctx)
	if err != nil {
		return err
	}

	a.field("Connected", st.Connected)
	a.field("Contract deployed", st.HasContract)
	a.field("Contract", deref(st.ContractAddress))
	a.field("Provider", deref(st.Provider))
	if !st.Connected {
		a.warn("The service is not connected to a blockchain; new credentials will not be anchored on a live network")
	}
	return nil
}

func (a *App) printCredentialLines(list []models.CredentialSummary) {
	if len(list) == 0 {
		a.printf("  No credentials\n")
		return
	}
	for _, c := range list {
		a.printf("  %s  %-12s %s\n", c.CredentialID, c.CredentialType, c.BlockchainHash)
	}
}

func (a *App) argOrPrompt(arg, prompt string) (string, error) {
	if arg = strings.TrimSpace(arg); arg != "" {
		return arg, nil
	}
	return getSimpleText(a.reader, prompt, os.Stdout)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
