// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrAccountNotFound is a sentinel error
type ErrAccountNotFound struct {
	Username string
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("target account %q not found", e.Username)
}

func NewAccountNotFound(username string) error {
	return &ErrAccountNotFound{Username: username}
}

// ErrInvalidTransition is returned by the repositories when a status update
// would violate the transition table.
type ErrInvalidTransition struct {
	Entity string
	From   string
	To     string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid %s status transition: %s -> %s", e.Entity, e.From, e.To)
}

func NewInvalidTransition(entity, from, to string) error {
	return &ErrInvalidTransition{Entity: entity, From: from, To: to}
}
