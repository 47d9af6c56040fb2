package validate

import (
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func OneOf(field, value string, allowed ...string) *ErrField {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ErrField{Field: field, Msg: "must be one of " + strings.Join(allowed, "|")}
}
