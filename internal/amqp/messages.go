package amqp

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LedgerSavedMessage announces that a user's ledger was saved. It carries no
// entries; consumers load the snapshot from the primary store.
type LedgerSavedMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Entries   int       `json:"entries"`
	Timestamp time.Time `json:"timestamp"`
}

var ErrInvalidMessage = errors.New("invalid ledger saved message")

func NewLedgerSavedMessage(user string, entries int) *LedgerSavedMessage {
	return &LedgerSavedMessage{
		ID:        uuid.NewString(),
		UserID:    user,
		Entries:   entries,
		Timestamp: time.Now().UTC(),
	}
}

func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSavedMessageFromJSON decodes a message and rejects ones without a user.
func LedgerSavedMessageFromJSON(data []byte) (*LedgerSavedMessage, error) {
	var msg LedgerSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(msg.UserID) == "" {
		return nil, ErrInvalidMessage
	}
	return &msg, nil
}
