package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/dmitrijs2005/idkeeper/internal/client/models"
)

// fakeClient implements client.Client for service unit tests. Each method
// records its arguments and returns the configured result.
type fakeClient struct {
	CloseErr error

	RegisterRet *client.AuthResult
	RegisterErr error
	LoginRet    *client.AuthResult
	LoginErr    error

	VerifyTokenRet *models.TokenInfo
	VerifyTokenErr error

	ChangePasswordErr error

	ProfileRet       *models.Profile
	ProfileErr       error
	UpdateProfileRet *models.UserSummary
	UpdateProfileErr error

	CreateRet *models.CreationOutcome
	CreateErr error
	ListRet   []models.CredentialSummary
	ListErr   error
	GetRet    *models.CredentialDetail
	GetErr    error
	RevokeErr error
	VerifyRet *models.VerificationOutcome
	VerifyErr error
	ProofRet  *models.ProofReport
	ProofErr  error

	HealthErr error
	ChainRet  *models.BlockchainStatus
	ChainErr  error

	// recorded arguments
	Calls []string

	LastRegister     client.RegisterRequest
	LastLoginEmail   string
	LastLoginPass    string
	LastToken        string
	LastOldPassword  string
	LastNewPassword  string
	LastFullName     string
	LastCreateType   string
	LastCreateData   json.RawMessage
	LastCredentialID string
	LastHash         string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResult, error) {
	f.Calls = append(f.Calls, "register")
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*client.AuthResult, error) {
	f.Calls = append(f.Calls, "login")
	f.LastLoginEmail, f.LastLoginPass = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) VerifyToken(ctx context.Context, token string) (*models.TokenInfo, error) {
	f.Calls = append(f.Calls, "verify-token")
	f.LastToken = token
	return f.VerifyTokenRet, f.VerifyTokenErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	f.Calls = append(f.Calls, "change-password")
	f.LastOldPassword, f.LastNewPassword = oldPassword, newPassword
	return f.ChangePasswordErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	f.Calls = append(f.Calls, "profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, fullName string) (*models.UserSummary, error) {
	f.Calls = append(f.Calls, "update-profile")
	f.LastFullName = fullName
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) CreateCredential(ctx context.Context, credentialType string, data json.RawMessage) (*models.CreationOutcome, error) {
	f.Calls = append(f.Calls, "create")
	f.LastCreateType, f.LastCreateData = credentialType, data
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) ListCredentials(ctx context.Context) ([]models.CredentialSummary, error) {
	f.Calls = append(f.Calls, "list")
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetCredential(ctx context.Context, credentialID string) (*models.CredentialDetail, error) {
	f.Calls = append(f.Calls, "get")
	f.LastCredentialID = credentialID
	return f.GetRet, f.GetErr
}

func (f *fakeClient) RevokeCredential(ctx context.Context, credentialID string) error {
	f.Calls = append(f.Calls, "revoke")
	f.LastCredentialID = credentialID
	return f.RevokeErr
}

func (f *fakeClient) VerifyCredential(ctx context.Context, hash string) (*models.VerificationOutcome, error) {
	f.Calls = append(f.Calls, "verify")
	f.LastHash = hash
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) GetBlockchainProof(ctx context.Context, hash string) (*models.ProofReport, error) {
	f.Calls = append(f.Calls, "proof")
	f.LastHash = hash
	return f.ProofRet, f.ProofErr
}

func (f *fakeClient) Health(ctx context.Context) (*models.HealthStatus, error) {
	f.Calls = append(f.Calls, "health")
	if f.HealthErr != nil {
		return nil, f.HealthErr
	}
	return &models.HealthStatus{Status: "healthy"}, nil
}

func (f *fakeClient) BlockchainStatus(ctx context.Context) (*models.BlockchainStatus, error) {
	f.Calls = append(f.Calls, "chain")
	return f.ChainRet, f.ChainErr
}
