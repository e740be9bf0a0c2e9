package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/idkeeper/internal/client/config"
	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
	"github.com/dmitrijs2005/idkeeper/internal/client/workflow"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeAuth struct {
	session models.Session

	regIn    services.RegisterInput
	regErr   error
	loginErr error

	loginEmail string
	loginPass  []byte

	oldPass, newPass []byte
	passErr          error

	logoutCalls int
	logoutErr   error

	profile    *models.Profile
	profileErr error

	renamed   string
	renameErr error

	tokenInfo *models.TokenInfo
	tokenErr  error
	lastToken string

	pingErr error
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(_ context.Context, in services.RegisterInput) (models.UserSummary, error) {
	f.regIn = in
	f.regIn.Password = append([]byte(nil), in.Password...)
	f.regIn.ConfirmPassword = append([]byte(nil), in.ConfirmPassword...)
	if f.regErr != nil {
		return models.UserSummary{}, f.regErr
	}
	u := models.UserSummary{ID: "u1", Email: in.Email}
	f.session = models.Session{Token: "tok", User: &u}
	return u, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (models.UserSummary, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return models.UserSummary{}, f.loginErr
	}
	u := models.UserSummary{ID: "u1", Email: email}
	f.session = models.Session{Token: "tok", User: &u}
	return u, nil
}

func (f *fakeAuth) VerifyToken(_ context.Context, token string) (*models.TokenInfo, error) {
	f.lastToken = token
	return f.tokenInfo, f.tokenErr
}

func (f *fakeAuth) ChangePassword(_ context.Context, oldPassword, newPassword []byte) error {
	f.oldPass = append([]byte(nil), oldPassword...)
	f.newPass = append([]byte(nil), newPassword...)
	return f.passErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	f.session = models.Session{}
	return f.logoutErr
}

func (f *fakeAuth) Profile(context.Context) (*models.Profile, error) { return f.profile, f.profileErr }

func (f *fakeAuth) UpdateProfile(_ context.Context, fullName string) (models.UserSummary, error) {
	f.renamed = fullName
	return models.UserSummary{FullName: fullName}, f.renameErr
}

func (f *fakeAuth) Ping(context.Context) error      { return f.pingErr }
func (f *fakeAuth) Session() models.Session         { return f.session }
func (f *fakeAuth) Close(ctx context.Context) error { return nil }

type fakeCreds struct {
	created   *models.CreationOutcome
	createErr error
	createdAs string
	data      json.RawMessage

	list    []models.CredentialSummary
	listErr error

	detail *models.CredentialDetail
	getErr error

	revoked   []string
	revokeErr error

	verify    *models.VerificationOutcome
	verifyErr error
	proof     *models.ProofReport
	proofErr  error

	chain *models.BlockchainStatus
}

var _ services.CredentialService = (*fakeCreds)(nil)

func (f *fakeCreds) Create(_ context.Context, t string, data json.RawMessage) (*models.CreationOutcome, error) {
	f.createdAs, f.data = t, data
	return f.created, f.createErr
}

func (f *fakeCreds) List(context.Context) ([]models.CredentialSummary, error) {
	return f.list, f.listErr
}

func (f *fakeCreds) Get(context.Context, string) (*models.CredentialDetail, error) {
	return f.detail, f.getErr
}

func (f *fakeCreds) Revoke(_ context.Context, id string) error {
	f.revoked = append(f.revoked, id)
	return f.revokeErr
}

func (f *fakeCreds) Verify(context.Context, string) (*models.VerificationOutcome, error) {
	return f.verify, f.verifyErr
}

func (f *fakeCreds) BlockchainProof(context.Context, string) (*models.ProofReport, error) {
	return f.proof, f.proofErr
}

func (f *fakeCreds) BlockchainStatus(context.Context) (*models.BlockchainStatus, error) {
	return f.chain, nil
}

// newTestApp builds an App over fakes. input feeds the App's reader; the
// returned buffer collects everything the App prints.
func newTestApp(auth *fakeAuth, creds *fakeCreds, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	log := logging.NewNopLogger()
	return &App{
		config:      &config.Config{},
		authService: auth,
		credService: creds,
		flows:       workflow.New(auth, creds, log),
		log:         log,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         &out,
	}, &out
}

// stubPrompts answers getSimpleText with texts and getPassword with
// passwords, in order.
func stubPrompts(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return p, nil
	}
}
