package dto

import (
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
)

// LedgerStateResponse is the history engine's view of the ledger: the present
// snapshot plus whether undo/redo would do anything (the UI's
// "disable the button" contract).
type LedgerStateResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	CanUndo      bool                  `json:"canUndo"`
	CanRedo      bool                  `json:"canRedo"`
}

// ToLedgerStateResponse converts a snapshot and its cursor flags to a DTO.
func ToLedgerStateResponse(snap domain.Snapshot, canUndo, canRedo bool) LedgerStateResponse {
	return LedgerStateResponse{
		Transactions: ToTransactionResponses(snap),
		CanUndo:      canUndo,
		CanRedo:      canRedo,
	}
}
