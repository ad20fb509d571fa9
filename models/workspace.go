package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrWorkspaceName = errors.New("workspace name is required")
var ErrPassphraseLength = errors.New("passphrase must be at least 8 characters")

type WorkspaceSignupRequest struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

type WorkspaceCredentials struct {
	WorkspaceID string `json:"workspaceId"`
	Passphrase  string `json:"passphrase"`
}

// Workspace owns one studio: a working set, saved palettes and preferences.
type Workspace struct {
	WorkspaceID      string    `json:"workspaceId"`
	Name             string    `json:"name"`
	HashedPassphrase string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (workspace Workspace) GenerateKey() string {
	return uuid.New().String()
}

func (workspace Workspace) GenerateHash(passphrase string) (string, error) {
	hashed, hashErr := bcrypt.GenerateFromPassword([]byte(passphrase), 8)
	if hashErr != nil {
		return "", fmt.Errorf("error hashing passphrase %v", hashErr)
	}
	return string(hashed), nil
}

// CheckPassphrase reports whether passphrase matches the stored hash.
func (workspace Workspace) CheckPassphrase(passphrase string) bool {
	return bcrypt.CompareHashAndPassword([]byte(workspace.HashedPassphrase), []byte(passphrase)) == nil
}

func NewWorkspace(signup WorkspaceSignupRequest) (Workspace, error) {
	name := strings.TrimSpace(signup.Name)
	if name == "" {
		return Workspace{}, ErrWorkspaceName
	}
	if len(signup.Passphrase) < 8 {
		return Workspace{}, ErrPassphraseLength
	}

	var workspace Workspace
	hashed, err := workspace.GenerateHash(signup.Passphrase)
	if err != nil {
		return Workspace{}, err
	}

	return Workspace{
		WorkspaceID:      workspace.GenerateKey(),
		Name:             name,
		HashedPassphrase: hashed,
		CreatedAt:        time.Now().UTC(),
	}, nil
}
