package stores

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
)

// GormStore implements Store on top of gorm, for both SQLite and PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already-open gorm handle. Used by tests.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if err := db.AutoMigrate(&models.User{}, &models.Contact{}, &models.Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) connect(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}
	s.db = db

	if err := s.db.AutoMigrate(&models.User{}, &models.Contact{}, &models.Record{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *GormStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive.
func (s *GormStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// ---- users ----

func (s *GormStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) SaveUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *GormStore) DeleteUser(user *models.User) error {
	// Delete owned rows explicitly; SQLite does not enforce the FK cascade
	// unless foreign_keys is enabled on the connection.
	return s.db.Transaction(func(tx *gorm.DB) error {
		var contactIDs []uint
		if err := tx.Model(&models.Contact{}).Where("user_id = ?", user.ID).Pluck("id", &contactIDs).Error; err != nil {
			return err
		}
		if len(contactIDs) > 0 {
			if err := tx.Where("contact_id IN ?", contactIDs).Delete(&models.Record{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Contact{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
}

func (s *GormStore) CountContacts(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Contact{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *GormStore) CountRecords(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Record{}).
		Joins("JOIN contacts ON contacts.id = records.contact_id").
		Where("contacts.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ---- contacts ----

func (s *GormStore) CreateContact(contact *models.Contact) error {
	return s.db.Create(contact).Error
}

func (s *GormStore) ListContacts(userID uint, search string, offset, limit int) ([]models.Contact, int64, error) {
	query := s.db.Model(&models.Contact{}).Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []models.Contact
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (s *GormStore) GetContact(userID, contactID uint) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *GormStore) SaveContact(contact *models.Contact) error {
	return s.db.Save(contact).Error
}

func (s *GormStore) DeleteContact(contact *models.Contact) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", contact.ID).Delete(&models.Record{}).Error; err != nil {
			return err
		}
		return tx.Delete(contact).Error
	})
}

func (s *GormStore) ListContactsWithRecords(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.Where("user_id = ?", userID).Preload("Records").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// ---- records ----

func (s *GormStore) CreateRecord(record *models.Record) error {
	return s.db.Create(record).Error
}

func (s *GormStore) recordQuery(userID uint) *gorm.DB {
	return s.db.Model(&models.Record{}).
		Joins("JOIN contacts ON contacts.id = records.contact_id").
		Where("contacts.user_id = ?", userID)
}

func (s *GormStore) ListRecords(userID uint, filter RecordFilter) ([]models.Record, int64, error) {
	query := s.recordQuery(userID)
	if filter.ContactID != nil {
		query = query.Where("records.contact_id = ?", *filter.ContactID)
	}
	if filter.Category != nil {
		query = query.Where("records.category = ?", *filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("records.content LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []models.Record
	if err := query.Preload("Contact").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *GormStore) GetRecord(userID, recordID uint) (*models.Record, error) {
	var record models.Record
	err := s.recordQuery(userID).
		Where("records.id = ?", recordID).
		Preload("Contact").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GormStore) SaveRecord(record *models.Record) error {
	// Save would cascade into the preloaded Contact association
	return s.db.Omit("Contact").Save(record).Error
}

func (s *GormStore) DeleteRecord(record *models.Record) error {
	return s.db.Delete(record).Error
}
