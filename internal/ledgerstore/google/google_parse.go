package google

import (
	"fmt"
	"sort"
	"strings"

	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"
)

// parseLedger converts a values matrix as returned by the Sheets API into a
// ledger. The first row must be the header.
func parseLedger(values [][]interface{}) (core.Ledger, error) {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = toStrings(row)
	}
	return ledgerstore.DecodeRows(rows)
}

// ledgerValues is the inverse of parseLedger.
func ledgerValues(l core.Ledger) [][]interface{} {
	rows := ledgerstore.EncodeRows(l)
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

func usersFromTitles(titles []string) []string {
	var users []string
	for _, t := range titles {
		if !strings.HasPrefix(t, tabPrefix) {
			continue
		}
		u := strings.TrimPrefix(t, tabPrefix)
		if _, err := core.NormalizeUserID(u); err != nil {
			continue
		}
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
