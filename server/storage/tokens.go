package storage

import (
	"time"

	"gorm.io/gorm"
)

// Token is the ORM object for the admin's stored credentials.
// There is at most one row; saving replaces whatever was there.
type Token struct {
	ID           uint `gorm:"primarykey"`
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UpdatedAt    time.Time
}

type Tokens interface {
	LoadToken() (*Token, error)
	SaveToken(t *Token) error
	DeleteToken() error
}

func (s *sqliteDatabase) LoadToken() (*Token, error) {
	var token Token
	tx := s.db.First(&token)
	if tx.Error == gorm.ErrRecordNotFound {
		return nil, nil
	} else if tx.Error != nil {
		return nil, tx.Error
	}
	return &token, nil
}

func (s *sqliteDatabase) SaveToken(t *Token) error {
	t.ID = 1
	tx := s.db.Save(t)
	return tx.Error
}

func (s *sqliteDatabase) DeleteToken() error {
	tx := s.db.Where("id = ?", 1).Delete(&Token{})
	return tx.Error
}
