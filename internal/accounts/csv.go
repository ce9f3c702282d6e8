package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/auditsim/internal/model"
)

const (
	numFields  = 6
	colCode    = 0
	colName    = 1
	colType    = 2
	colNormal  = 3
	colSubtype = 4
	colDesc    = 5
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"code", "name", "type", "normal_balance", "subtype", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colNormal] = string(acct.NormalBalance)
	row[colSubtype] = acct.Subtype
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account. A blank normal balance
// is filled in from the account type.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colCode] == "" {
		return model.Account{}, fmt.Errorf("missing account code")
	}

	acctType := model.AccountType(record[colType])
	if !acctType.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}

	normal := model.NormalBalance(record[colNormal])
	switch normal {
	case model.NormalDebit, model.NormalCredit:
	case "":
		normal = acctType.NormalBalance()
	default:
		return model.Account{}, fmt.Errorf("unknown normal balance %q", record[colNormal])
	}

	return model.Account{
		Code:          record[colCode],
		Name:          record[colName],
		Type:          acctType,
		NormalBalance: normal,
		Subtype:       record[colSubtype],
		Description:   record[colDesc],
	}, nil
}
