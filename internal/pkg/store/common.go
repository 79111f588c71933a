package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
)

const (
	tableCompanies        = "companies"
	tablePlants           = "plants"
	tableIndicators       = "indicators"
	tableIndicatorRecords = "indicator_records"
)

// insertChunk keeps multi-row inserts under the 65535 bind parameter limit.
const insertChunk = 1000

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
