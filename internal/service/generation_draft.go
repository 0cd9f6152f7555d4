package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/validator"
)

const generationSystemPrompt = `You are an invoice-generation AI model. Extract structured invoice details from natural language descriptions.
Output ONLY valid JSON matching this structure:
{
  "client": { "name": "string", "email": "string (optional)", "address": "string (optional)" },
  "items": [{ "description": "string", "quantity": number, "price": number }],
  "currency": "GBP",
  "notes": "string (optional)",
  "due_date": "YYYY-MM-DD (optional)"
}

Extract line items with descriptions, quantities, and prices. Calculate totals accurately. If currency is mentioned, use it; otherwise default to GBP.`

const generationInvalidHint = "The generated invoice was incomplete. Please add more detail to the description and try again."

// invoiceDraft is the model's output. Numbers are pointers so a missing
// value is told apart from zero.
type invoiceDraft struct {
	Client   draftClient  `json:"client"`
	Items    []*draftItem `json:"items" validate:"required,min=1,dive,required"`
	Currency string       `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Notes    string       `json:"notes,omitempty"`
	DueDate  string       `json:"due_date,omitempty"`
}

type draftClient struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address string `json:"address,omitempty"`
}

type draftItem struct {
	Description string   `json:"description" validate:"required"`
	Quantity    *float64 `json:"quantity" validate:"required,gt=0,lte=99999999.99"`
	Price       *float64 `json:"price" validate:"required,gt=0,lte=99999999.99"`
}

func buildGenerationUserPrompt(description, clientName, clientEmail string) string {
	var b strings.Builder
	b.WriteString("Generate an invoice from this description:\n\n")
	b.WriteString("Description: ")
	b.WriteString(description)
	if clientName != "" {
		b.WriteString("\nClient Name: ")
		b.WriteString(clientName)
	}
	if clientEmail != "" {
		b.WriteString("\nClient Email: ")
		b.WriteString(clientEmail)
	}
	b.WriteString("\n\nOutput the invoice data as JSON.")
	return b.String()
}

// decodeInvoiceDraft parses and validates raw model output. Client hints
// fill the client name and email only where the model left them out.
func decodeInvoiceDraft(content, clientName, clientEmail string) (*invoiceDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ierr.NewError("model returned no content").
			WithHint("No response from the AI service. Please try again.").
			Mark(ierr.ErrGenerationMalformed)
	}

	var draft invoiceDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		var typeErr *json.UnmarshalTypeError
		if ierr.As(err, &typeErr) {
			return nil, ierr.NewError("model output has wrong types").
				WithHint(generationInvalidHint).
				WithValidationErrors([]string{fmt.Sprintf("%s: expected %s", typeErr.Field, jsonKind(typeErr.Type))}).
				Mark(ierr.ErrGenerationInvalid)
		}
		return nil, ierr.WithError(err).
			WithHint("The AI service returned an unreadable response. Please try again.").
			Mark(ierr.ErrGenerationMalformed)
	}

	draft.Client.Name = strings.TrimSpace(draft.Client.Name)
	draft.Client.Email = strings.TrimSpace(draft.Client.Email)
	draft.Currency = strings.TrimSpace(draft.Currency)
	if draft.Client.Name == "" {
		draft.Client.Name = strings.TrimSpace(clientName)
	}
	if draft.Client.Email == "" {
		draft.Client.Email = strings.TrimSpace(clientEmail)
	}
	for _, item := range draft.Items {
		if item != nil {
			item.Description = strings.TrimSpace(item.Description)
		}
	}

	if err := validator.ValidateStruct(&draft, generationInvalidHint, ierr.ErrGenerationInvalid); err != nil {
		return nil, err
	}
	return &draft, nil
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Ptr:
		return jsonKind(t.Elem())
	default:
		return t.Kind().String()
	}
}
