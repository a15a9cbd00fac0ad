package order

import "time"

// Doc is the one canonical serialized shape of an Order. Every consumer of
// order data — the snapshot file, the relational payload columns, broadcast
// events, query responses — uses this exact shape. The transport boundary
// resolves inbound payloads into it before anything reaches the core, so the
// core never branches on multiple possible input shapes.
type Doc struct {
	ID            string        `json:"id"`
	ArticleNumber string        `json:"articleNumber"`
	DrawingNumber string        `json:"drawingNumber"`
	Status        Status        `json:"status"`
	Results       []Measurement `json:"results,omitempty"`
	SerialNumber  string        `json:"serialNumber,omitempty"`
	Controller    string        `json:"controller,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
}

// Doc returns the order's canonical serialized shape.
// The result is a value copy; mutating it never affects the aggregate.
func (o *Order) Doc() Doc {
	doc := Doc{
		ID:            o.id.String(),
		ArticleNumber: o.articleNumber,
		DrawingNumber: o.drawingNumber,
		Status:        o.status,
		SerialNumber:  o.serialNumber,
		Controller:    o.controller,
		CreatedAt:     o.createdAt,
	}

	if len(o.results) > 0 {
		doc.Results = make([]Measurement, len(o.results))
		copy(doc.Results, o.results)
	}

	if !o.completedAt.IsZero() {
		completedAt := o.completedAt
		doc.CompletedAt = &completedAt
	}

	return doc
}
