// Package stores provides the database layer. Every query that touches a
// contact or record is scoped to the owning user, so a caller cannot reach
// another user's data even with a valid ID.
package stores

import (
	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
)

// RecordFilter narrows record listings. Nil/zero fields mean "no filter".
type RecordFilter struct {
	ContactID *uint
	Category  *models.RecordCategory
	Search    string
	Offset    int
	Limit     int
}

// Store abstracts database operations over users, contacts and records.
type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(user *models.User) error
	CountContacts(userID uint) (int64, error)
	CountRecords(userID uint) (int64, error)

	// Contact operations, all scoped to the owning user
	CreateContact(contact *models.Contact) error
	ListContacts(userID uint, search string, offset, limit int) ([]models.Contact, int64, error)
	GetContact(userID, contactID uint) (*models.Contact, error)
	SaveContact(contact *models.Contact) error
	DeleteContact(contact *models.Contact) error
	ListContactsWithRecords(userID uint) ([]models.Contact, error)

	// Record operations, scoped through the contact ownership chain
	CreateRecord(record *models.Record) error
	ListRecords(userID uint, filter RecordFilter) ([]models.Record, int64, error)
	GetRecord(userID, recordID uint) (*models.Record, error)
	SaveRecord(record *models.Record) error
	DeleteRecord(record *models.Record) error

	// Connection management
	Close() error
	Ping() error
}
