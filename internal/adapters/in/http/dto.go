package http

import "metrology/internal/core/domain/model/order"

// CreateOrderRequest is the body of POST /api/v1/orders. Every field is
// optional: a missing id is generated server-side and the article and
// drawing numbers are opaque labels that may legitimately be blank.
type CreateOrderRequest struct {
	ID            string `json:"id"`
	ArticleNumber string `json:"articleNumber"`
	DrawingNumber string `json:"drawingNumber"`
}

// MeasurementRequest is one measured feature inside a submission body.
type MeasurementRequest struct {
	Feature string  `json:"feature"`
	Nominal float64 `json:"nominal"`
	Actual  float64 `json:"actual"`
	Status  string  `json:"status" validate:"required,oneof=OK FAIL"`
}

// SubmitMeasurementRequest is the body of POST /api/v1/orders/:id/measurements.
type SubmitMeasurementRequest struct {
	Results    []MeasurementRequest `json:"results" validate:"dive"`
	Controller string               `json:"controller" validate:"required"`
}

func (r SubmitMeasurementRequest) toMeasurements() []order.Measurement {
	results := make([]order.Measurement, len(r.Results))
	for i, m := range r.Results {
		results[i] = order.Measurement{
			Feature: m.Feature,
			Nominal: m.Nominal,
			Actual:  m.Actual,
			Status:  order.Status(m.Status),
		}
	}
	return results
}

// UpdateOperatorsRequest is the body of PUT /api/v1/operators. An empty
// list is a valid request; the roster then falls back to its default.
type UpdateOperatorsRequest struct {
	Operators []string `json:"operators"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
