package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

const (
	raiseExceptionCode  = pq.ErrorCode("P0001") // RAISE EXCEPTION in a stored procedure
	uniqueViolationCode = pq.ErrorCode("23505")
)

func affectedRows(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}
