package models

// CoreValue is a user-defined alignment tag. ValueName is its identity.
type CoreValue struct {
	ID        int    `json:"id,omitempty"`
	ValueName string `json:"value_name" validate:"required"`
}
