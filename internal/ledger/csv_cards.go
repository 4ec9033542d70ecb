package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cardledger-dev/cardledger/internal/model"
)

const (
	cardNumFields  = 5
	cardColNumber  = 0
	cardColAccount = 1
	cardColStatus  = 2
	cardColExpires = 3
	cardColHolder  = 4
)

// CardsHeader is the CSV header for cards.csv.
var CardsHeader = []string{"card_number", "account_id", "status", "expiration", "holder_name"}

// ReadCards reads cards.csv.
func ReadCards(r io.Reader) ([]model.Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = cardNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cards CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cards []model.Card
	for i, rec := range records[1:] {
		c, err := UnmarshalCard(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// WriteCards writes cards.csv.
func WriteCards(w io.Writer, cards []model.Card) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(CardsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range cards {
		if err := cw.Write(MarshalCard(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCard converts a Card to a CSV row.
func MarshalCard(c model.Card) []string {
	row := make([]string, cardNumFields)
	row[cardColNumber] = c.Number
	row[cardColAccount] = strconv.Itoa(c.AccountID)
	row[cardColStatus] = string(c.Status)
	row[cardColExpires] = c.Expiration.Format(dateFormat)
	row[cardColHolder] = c.HolderName
	return row
}

// UnmarshalCard converts a CSV row to a Card.
func UnmarshalCard(record []string) (model.Card, error) {
	if len(record) != cardNumFields {
		return model.Card{}, fmt.Errorf("expected %d fields, got %d", cardNumFields, len(record))
	}

	accountID, err := strconv.Atoi(record[cardColAccount])
	if err != nil {
		return model.Card{}, fmt.Errorf("parsing account_id %q: %w", record[cardColAccount], err)
	}

	expires, err := time.Parse(dateFormat, record[cardColExpires])
	if err != nil {
		return model.Card{}, fmt.Errorf("parsing expiration %q: %w", record[cardColExpires], err)
	}

	return model.Card{
		Number:     record[cardColNumber],
		AccountID:  accountID,
		Status:     model.CardStatus(record[cardColStatus]),
		Expiration: expires,
		HolderName: record[cardColHolder],
	}, nil
}
