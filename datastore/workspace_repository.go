package datastore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/color-game/palette-api/models"
)

var ErrWorkspaceExists = errors.New("workspace already exists")
var ErrInvalidCredentials = errors.New("invalid workspace credentials")

type WorkspaceRepository interface {
	Create(workspace models.Workspace) (models.Workspace, error)
	Get(workspaceID string) (models.Workspace, error)
	ValidateAndGet(credentials models.WorkspaceCredentials) (models.Workspace, error)
}

// workspaceRecord is the stored form of a workspace. Unlike the API form it
// carries the passphrase hash.
type workspaceRecord struct {
	models.Workspace
	PassphraseHash string `json:"passphraseHash"`
}

// WorkspaceDatabase keeps workspaces in the key-value store under
// "workspace:<id>".
type WorkspaceDatabase struct {
	store KeyValueRepository
}

func NewWorkspaceDatabase(store KeyValueRepository) (WorkspaceDatabase, error) {
	var workspaceDB WorkspaceDatabase
	workspaceDB.store = store
	return workspaceDB, nil
}

func workspaceKey(workspaceID string) string {
	return "workspace:" + workspaceID
}

func (wsdb WorkspaceDatabase) Create(workspace models.Workspace) (models.Workspace, error) {
	if _, err := wsdb.store.Get(workspaceKey(workspace.WorkspaceID)); err == nil {
		return models.Workspace{}, ErrWorkspaceExists
	} else if !IsNotFound(err) {
		return models.Workspace{}, err
	}

	data, err := json.Marshal(workspaceRecord{Workspace: workspace, PassphraseHash: workspace.HashedPassphrase})
	if err != nil {
		return models.Workspace{}, fmt.Errorf("error encoding workspace %v", err)
	}

	if err := wsdb.store.Set(workspaceKey(workspace.WorkspaceID), string(data)); err != nil {
		return models.Workspace{}, err
	}
	return workspace, nil
}

func (wsdb WorkspaceDatabase) Get(workspaceID string) (models.Workspace, error) {
	raw, err := wsdb.store.Get(workspaceKey(workspaceID))
	if err != nil {
		return models.Workspace{}, err
	}

	var record workspaceRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return models.Workspace{}, fmt.Errorf("error decoding workspace %s: %v", workspaceID, err)
	}

	workspace := record.Workspace
	workspace.HashedPassphrase = record.PassphraseHash
	return workspace, nil
}

func (wsdb WorkspaceDatabase) ValidateAndGet(credentials models.WorkspaceCredentials) (models.Workspace, error) {
	workspace, err := wsdb.Get(credentials.WorkspaceID)
	if IsNotFound(err) {
		return models.Workspace{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Workspace{}, err
	}

	if !workspace.CheckPassphrase(credentials.Passphrase) {
		return models.Workspace{}, ErrInvalidCredentials
	}
	return workspace, nil
}
