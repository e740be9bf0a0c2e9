package models

import "encoding/json"

// CredentialSummary is one row of the credential list. It is a snapshot and
// is not cached beyond the list result it came from.
type CredentialSummary struct {
	CredentialID   string `json:"credential_id"`
	CredentialType string `json:"credential_type"`
	BlockchainHash string `json:"blockchain_hash"`
	CreatedAt      string `json:"created_at"`
	AccessCount    int    `json:"access_count"`
}

// CredentialDetail is a single credential fetched by id for inspection.
// CredentialData is opaque and may be absent when the server withholds it.
type CredentialDetail struct {
	CredentialID   string          `json:"credential_id"`
	CredentialType string          `json:"credential_type"`
	CredentialData json.RawMessage `json:"credential_data,omitempty"`
	BlockchainHash string          `json:"blockchain_hash"`
	CreatedAt      string          `json:"created_at"`
	AccessCount    int             `json:"access_count"`
}

// BlockchainTx describes the anchoring transaction. Simulated is true when
// the service did not submit to a live network.
type BlockchainTx struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
	Status      int    `json:"status"`
	Simulated   bool   `json:"simulated"`
}

// Succeeded reports whether the transaction receipt status is 1.
func (tx BlockchainTx) Succeeded() bool {
	return tx.Status == 1
}

// CreationOutcome is the result of creating a credential.
type CreationOutcome struct {
	CredentialID   string        `json:"credential_id"`
	CredentialHash string        `json:"credential_hash"`
	BlockchainTx   *BlockchainTx `json:"blockchain_tx"`
}

// Anchored reports whether the service returned an anchoring transaction.
func (o CreationOutcome) Anchored() bool {
	return o.BlockchainTx != nil
}

// BlockchainVerification is the service's on-chain check of a credential.
type BlockchainVerification struct {
	Valid  bool   `json:"valid"`
	Source string `json:"source"`
}

// VerificationOutcome is the public verification result for a hash.
// Valid=false means the record exists but is not valid (e.g. revoked).
type VerificationOutcome struct {
	Valid                  bool                    `json:"valid"`
	CredentialType         string                  `json:"credential_type"`
	BlockchainHash         string                  `json:"blockchain_hash"`
	CreatedAt              string                  `json:"created_at"`
	BlockchainVerification *BlockchainVerification `json:"blockchain_verification"`
}

// BlockchainProof is evidence that a hash was recorded on a ledger.
type BlockchainProof struct {
	OwnerAddress    string `json:"owner_address"`
	ContractAddress string `json:"contract_address"`
	Network         string `json:"network"`
	VerifiedOnChain bool   `json:"verified_on_chain"`
}

// ProofReport is the blockchain-proof envelope. Proof is nil when the service
// has no on-chain proof; ProofError carries the service's reason when it
// tried and failed.
type ProofReport struct {
	CredentialHash string
	CredentialType string
	CreatedAt      string
	IsActive       bool
	Proof          *BlockchainProof
	ProofError     string
}

// HasProof reports whether a usable on-chain proof is present.
func (r ProofReport) HasProof() bool {
	return r.Proof != nil && r.ProofError == ""
}

// HealthStatus is the GET /health payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// BlockchainStatus is the GET /blockchain/status payload.
type BlockchainStatus struct {
	Connected       bool    `json:"connected"`
	HasContract     bool    `json:"has_contract"`
	ContractAddress *string `json:"contract_address"`
	Provider        *string `json:"provider"`
}
