package postgres

import (
	"database/sql"
	"errors"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with
// wildcards in s taken literally
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
