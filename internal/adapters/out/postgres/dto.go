// Package postgres persists the order set in PostgreSQL via GORM. Orders
// keep their canonical JSON shape in a jsonb payload column; status and
// drawing number are lifted into indexed columns so the partition split and
// the archived-count query stay in SQL.
package postgres

import (
	"encoding/json"
	"fmt"

	"metrology/internal/core/domain/model/order"
)

// OrderRow is the database representation of a single order. The payload
// column holds the whole canonical document; the remaining columns exist
// for querying and for reassembling the partitions in insertion order.
type OrderRow struct {
	ID            string `gorm:"primaryKey"`
	Status        string `gorm:"index"`
	DrawingNumber string `gorm:"index"`
	Position      int
	Payload       []byte `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming convention.
func (OrderRow) TableName() string {
	return "orders"
}

// RosterRow holds the operator roster as a single JSON document. The table
// has exactly one row; the fixed primary key makes the upsert trivial.
type RosterRow struct {
	ID    int    `gorm:"primaryKey"`
	Names []byte `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming convention.
func (RosterRow) TableName() string {
	return "operator_roster"
}

const rosterRowID = 1

// fromDoc converts a canonical order document to its row representation.
// Position records the document's place within the whole saved state so a
// later load reproduces the original ordering.
func fromDoc(doc order.Doc, position int) (OrderRow, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return OrderRow{}, fmt.Errorf("encode order %s: %w", doc.ID, err)
	}

	return OrderRow{
		ID:            doc.ID,
		Status:        string(doc.Status),
		DrawingNumber: doc.DrawingNumber,
		Position:      position,
		Payload:       payload,
	}, nil
}

// toDoc converts a row back to the canonical order document.
func toDoc(row OrderRow) (order.Doc, error) {
	var doc order.Doc
	if err := json.Unmarshal(row.Payload, &doc); err != nil {
		return order.Doc{}, fmt.Errorf("decode order %s: %w", row.ID, err)
	}
	return doc, nil
}

func marshalNames(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

func unmarshalNames(payload []byte, names *[]string) error {
	return json.Unmarshal(payload, names)
}
