package repositories

import (
	"database/sql"
	"time"

	"corptransit/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dec(ns sql.NullString) decimal.Decimal {
	if !ns.Valid {
		return decimal.Zero
	}
	return utils.DecimalOrZero(ns.String)
}

// asUUID parses an id column written by this application; a malformed value
// yields the zero UUID rather than aborting the scan.
func asUUID(s string) uuid.UUID {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return u
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
