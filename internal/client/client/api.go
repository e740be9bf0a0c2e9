package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/netx"
)

type authResponse struct {
	Token  string             `json:"token"`
	UserID string             `json:"user_id"`
	User   models.UserSummary `json:"user"`
}

func (r authResponse) result(what string) (*AuthResult, error) {
	if r.Token == "" {
		return nil, decodeFailure(what, errors.New("missing token"))
	}
	user := r.User
	if user.ID == "" {
		user.ID = r.UserID
	}
	return &AuthResult{Token: r.Token, User: user}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var resp authResponse
	if err := c.Send(ctx, http.MethodPost, "/auth/register", req, &resp, Anonymous()); err != nil {
		return nil, err
	}
	return resp.result("register")
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.Send(ctx, http.MethodPost, "/auth/login", body, &resp, Anonymous(), CredentialCheck()); err != nil {
		return nil, err
	}
	return resp.result("login")
}

func (c *HTTPClient) VerifyToken(ctx context.Context, token string) (*models.TokenInfo, error) {
	var info models.TokenInfo
	if err := c.Send(ctx, http.MethodPost, "/auth/verify-token", struct{}{}, &info, WithBearer(token)); err != nil {
		return nil, err
	}
	return &info, nil
}

// oldPasswordRejected is the service's 401 text for a wrong current
// password. Other 401s from change-password reject the session token.
const oldPasswordRejected = "Old password is incorrect"

func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.Send(ctx, http.MethodPost, "/users/change-password", body, nil, CredentialCheck(oldPasswordRejected))
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.Send(ctx, http.MethodGet, "/users/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, fullName string) (*models.UserSummary, error) {
	var resp struct {
		User models.UserSummary `json:"user"`
	}
	body := map[string]string{"full_name": fullName}
	if err := c.Send(ctx, http.MethodPut, "/users/profile", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) CreateCredential(ctx context.Context, credentialType string, data json.RawMessage) (*models.CreationOutcome, error) {
	body := struct {
		CredentialType string          `json:"credential_type"`
		CredentialData json.RawMessage `json:"credential_data"`
	}{credentialType, data}

	var out models.CreationOutcome
	if err := c.Send(ctx, http.MethodPost, "/credentials/create", body, &out); err != nil {
		return nil, err
	}
	if out.CredentialHash == "" {
		return nil, decodeFailure("create", errors.New("missing credential_hash"))
	}
	return &out, nil
}

func (c *HTTPClient) ListCredentials(ctx context.Context) ([]models.CredentialSummary, error) {
	var resp struct {
		Credentials []models.CredentialSummary `json:"credentials"`
		Total       int                        `json:"total"`
	}
	if err := c.Send(ctx, http.MethodGet, "/credentials/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Credentials == nil {
		return []models.CredentialSummary{}, nil
	}
	return resp.Credentials, nil
}

func (c *HTTPClient) GetCredential(ctx context.Context, credentialID string) (*models.CredentialDetail, error) {
	var d models.CredentialDetail
	if err := c.Send(ctx, http.MethodGet, "/credentials/"+netx.PathSegment(credentialID), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) RevokeCredential(ctx context.Context, credentialID string) error {
	return c.Send(ctx, http.MethodPost, "/credentials/"+netx.PathSegment(credentialID)+"/revoke", nil, nil)
}

func (c *HTTPClient) VerifyCredential(ctx context.Context, hash string) (*models.VerificationOutcome, error) {
	var v models.VerificationOutcome
	if err := c.Send(ctx, http.MethodGet, "/credentials/verify/"+netx.PathSegment(hash), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// proofEnvelope mirrors the blockchain-proof response, where blockchain_proof
// is null, a proof, or an {"error": ...} object.
type proofEnvelope struct {
	CredentialHash  string `json:"credential_hash"`
	CredentialType  string `json:"credential_type"`
	CreatedAt       string `json:"created_at"`
	IsActive        bool   `json:"is_active"`
	BlockchainProof *struct {
		models.BlockchainProof
		Error string `json:"error"`
	} `json:"blockchain_proof"`
}

func (c *HTTPClient) GetBlockchainProof(ctx context.Context, hash string) (*models.ProofReport, error) {
	var env proofEnvelope
	if err := c.Send(ctx, http.MethodGet, "/credentials/"+netx.PathSegment(hash)+"/blockchain-proof", nil, &env); err != nil {
		return nil, err
	}

	report := &models.ProofReport{
		CredentialHash: env.CredentialHash,
		CredentialType: env.CredentialType,
		CreatedAt:      env.CreatedAt,
		IsActive:       env.IsActive,
	}
	if p := env.BlockchainProof; p != nil {
		if p.Error != "" {
			report.ProofError = p.Error
		} else {
			proof := p.BlockchainProof
			report.Proof = &proof
		}
	}
	return report, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*models.HealthStatus, error) {
	var h models.HealthStatus
	if err := c.Send(ctx, http.MethodGet, "/health", nil, &h, Anonymous()); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *HTTPClient) BlockchainStatus(ctx context.Context) (*models.BlockchainStatus, error) {
	var s models.BlockchainStatus
	if err := c.Send(ctx, http.MethodGet, "/blockchain/status", nil, &s, Anonymous()); err != nil {
		return nil, err
	}
	return &s, nil
}
