package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/essenza/backend/internal/application/engine"
	"github.com/essenza/backend/internal/domain/shared"
)

// Settings is the non-versioned preferences document that travels alongside
// the state in a backup. CurrentYear lives here rather than in the state
// tree, so switching years never dirties the undo history.
type Settings struct {
	Theme              string      `json:"theme"`
	CurrentYear        int         `json:"currentYear"`
	AIAssistantEnabled bool        `json:"aiAssistantEnabled"`
	Company            CompanyInfo `json:"companyInfo"`
}

// CompanyInfo is the letterhead block printed on documents
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	VATCode string `json:"vatNumber"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// backupDocument is the on-disk backup envelope
type backupDocument struct {
	State    json.RawMessage `json:"state"`
	Settings json.RawMessage `json:"settings"`
}

// ExportBackup serializes state and settings into a single portable
// document.
func ExportBackup(state *engine.State, settings Settings) ([]byte, error) {
	stateJSON, err := MarshalState(state)
	if err != nil {
		return nil, err
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return json.Marshal(backupDocument{State: stateJSON, Settings: settingsJSON})
}

// ImportBackup parses a backup document. Both the state and settings keys
// must be present; anything else is rejected as malformed rather than
// half-imported.
func ImportBackup(data []byte) (*engine.State, Settings, error) {
	var doc backupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Settings{}, shared.Newf(shared.CodeFormatError, "unrecognized backup document: %v", err)
	}
	if len(doc.State) == 0 || len(doc.Settings) == 0 {
		return nil, Settings{}, shared.NewDomainError(shared.CodeFormatError, "backup must contain both state and settings")
	}
	var settings Settings
	if err := json.Unmarshal(doc.Settings, &settings); err != nil {
		return nil, Settings{}, shared.Newf(shared.CodeFormatError, "invalid settings in backup: %v", err)
	}
	if settings.CurrentYear == 0 {
		settings.CurrentYear = time.Now().Year()
	}
	state, err := UnmarshalState(doc.State, settings.CurrentYear)
	if err != nil {
		return nil, Settings{}, shared.Newf(shared.CodeFormatError, "invalid state in backup: %v", err)
	}
	return state, settings, nil
}
