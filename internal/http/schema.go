package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"outlay/internal/core"
)

const maxBodyBytes = 1 << 20

// expenseSchema gates expense bodies before any domain logic runs: required
// fields, primitive types, and the date shape are rejected at the door with a
// field-specific message.
const expenseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["amount", "category_id", "date"],
  "properties": {
    "amount": {"type": "number", "exclusiveMinimum": 0},
    "category_id": {"type": "integer", "minimum": 1},
    "date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "note": {"type": ["string", "null"]}
  }
}`

var compiledExpenseSchema = jsonschema.MustCompileString("expense.json", expenseSchema)

type expenseRequest struct {
	Amount     float64 `json:"amount"`
	CategoryID int64   `json:"category_id"`
	Date       string  `json:"date"`
	Note       *string `json:"note"`
}

// requestError pairs an HTTP status with a client-facing message.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(msg string) *requestError {
	return &requestError{status: http.StatusBadRequest, message: msg}
}

func unprocessable(msg string) *requestError {
	return &requestError{status: http.StatusUnprocessableEntity, message: msg}
}

// parseExpenseBody decodes and validates a POST/PUT body into a domain
// expense. The returned error, if any, is always a *requestError.
func parseExpenseBody(r *http.Request) (core.Expense, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return core.Expense{}, badRequest("Failed to read request body")
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return core.Expense{}, badRequest("Invalid JSON body")
	}

	if err := compiledExpenseSchema.Validate(raw); err != nil {
		return core.Expense{}, unprocessable(schemaErrorMessage(err))
	}

	var req expenseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return core.Expense{}, badRequest("Invalid JSON body")
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Expense{}, unprocessable("date: not a valid calendar date")
	}

	e := core.Expense{
		Amount:     core.CentsFromAmount(req.Amount),
		Date:       date,
		Note:       req.Note,
		CategoryID: req.CategoryID,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, unprocessable(validationMessage(err))
	}
	return e, nil
}

// schemaErrorMessage flattens a schema validation error to a single
// "field: problem" line for the envelope.
func schemaErrorMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return "Invalid request body"
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if field == "" {
		return leaf.Message
	}
	return fmt.Sprintf("%s: %s", field, leaf.Message)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "amount: must convert to a positive number of cents"
	case errors.Is(err, core.ErrInvalidDate):
		return "date: not a valid calendar date"
	case errors.Is(err, core.ErrInvalidCategory):
		return "category_id: must be a positive integer"
	case errors.Is(err, core.ErrInvalidMonth):
		return "month: must match YYYY-MM"
	default:
		return err.Error()
	}
}
