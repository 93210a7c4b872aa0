package models

import "time"

// TransactionKind classifies reward/transaction rows, matching the ENUM in the DB.
type TransactionKind string

const (
	TxPositionPayout TransactionKind = "position_payout"
	TxOrganizerFee   TransactionKind = "organizer_fee"
	TxFundReserve    TransactionKind = "fund_reserve"
	TxSoloBonus      TransactionKind = "solo_bonus"
)

// PrizeAllocation is one winning position's payout.
type PrizeAllocation struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	Position      int       `json:"position" db:"position"`
	TeamID        int       `json:"team_id" db:"team_id"`
	Amount        int64     `json:"amount" db:"amount"`
	IsDistributed bool      `json:"is_distributed" db:"is_distributed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Transaction is one credit booked against a player balance (or the org/fund
// accounts) when winners are declared. UID is an audit identifier.
type Transaction struct {
	ID           int             `json:"id" db:"id"`
	UID          string          `json:"uid" db:"uid"`
	TournamentID int             `json:"tournament_id" db:"tournament_id"`
	PlayerID     *int            `json:"player_id,omitempty" db:"player_id"`
	Kind         TransactionKind `json:"kind" db:"kind"`
	Amount       int64           `json:"amount" db:"amount"`
	Note         *string         `json:"note,omitempty" db:"note"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// SoloSupportPool is the donor-funded balance that pays solo-support bonuses
// for one season.
type SoloSupportPool struct {
	ID        int       `json:"id" db:"id"`
	SeasonID  int       `json:"season_id" db:"season_id"`
	Balance   int64     `json:"balance" db:"balance"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
