package domain

import "errors"

var ErrContactNotFound = errors.New("emergency contact not found")

// EmergencyContact is a person to notify on a patient's behalf.
type EmergencyContact struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}
