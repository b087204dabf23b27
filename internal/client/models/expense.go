// Package models holds the client-side data types shared by the data store
// client and the services.
package models

import "strings"

// Expense is one spending record. ID is the key the data store assigned
// and is never part of the stored document. Any number, zero included, is a
// valid Value.
type Expense struct {
	ID          string  `json:"-"`
	Title       string  `json:"title" label:"Title" validate:"required"`
	Date        string  `json:"date" label:"Date" validate:"required,datetime=2006-01-02"`
	Value       float64 `json:"value" label:"Value"`
	Description string  `json:"description" label:"Description" validate:"required"`
}

// MatchesTitle reports whether term occurs in the title, ignoring case. An
// empty term matches everything.
func (e Expense) MatchesTitle(term string) bool {
	return strings.Contains(strings.ToLower(e.Title), strings.ToLower(term))
}

func TotalValue(list []Expense) float64 {
	var total float64
	for _, e := range list {
		total += e.Value
	}
	return total
}
