package booking

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// msbDateFormat is the date layout the MS-Buchhalter importer expects.
const msbDateFormat = "02.01.2006"

var msbHeader = []string{
	"Belegdatum", "Buchungsdatum", "Belegnummernkreis", "Belegnummer",
	"Buchungstext", "Betrag", "Sollkonto", "Habenkonto",
	"Steuerschlüssel", "Kostenstelle 1", "Kostenstelle 2", "Währung",
}

// ExportMSBuchhalter writes the journal lines of one broker account as a
// semicolon separated import file for MS-Buchhalter. Amounts use the German
// decimal comma; the document number columns stay empty, the importer
// assigns its own numbering.
func ExportMSBuchhalter(w io.Writer, j *Journal, accountID string) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(msbHeader); err != nil {
		return err
	}
	for _, l := range j.ForAccount(accountID) {
		row := []string{
			l.Date.time().Format(msbDateFormat),
			l.SettleDate.time().Format(msbDateFormat),
			"",
			"",
			l.Reference,
			strings.ReplaceAll(l.Amount.Decimal().String(), ".", ","),
			strconv.Itoa(int(l.Debit)),
			strconv.Itoa(int(l.Credit)),
			"0",
			"",
			"",
			"EUR",
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
