package store

import (
	"github.com/jinzhu/gorm"
)

// ReliefCore is the relational datastore of the service
type ReliefCore interface {
	Ping() error

	DonationLedger
}

// ReliefStore is an implementation of ReliefCore
type ReliefStore struct {
	ormDB *gorm.DB
}

func NewReliefStore(ormDB *gorm.DB) *ReliefStore {
	return &ReliefStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *ReliefStore) Ping() error {
	return s.ormDB.DB().Ping()
}
