package store

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/reliefhub/relief-api/schema"
)

var (
	ErrDuplicateReference = fmt.Errorf("payment reference has already been recorded")
)

type DonationLedger interface {
	RecordDonation(d *schema.Donation) error
	ListDonationsByDonor(donorID string) ([]schema.Donation, error)
	ListDonationsByRequest(requestID string) ([]schema.Donation, error)
	DonationTotal(donorID string) (schema.DonationTotal, error)
}

// RecordDonation inserts a ledger row. The gcash reference is unique.
func (s *ReliefStore) RecordDonation(d *schema.Donation) error {
	if err := s.ormDB.Create(d).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// ListDonationsByDonor returns the donations made by a user, newest first
func (s *ReliefStore) ListDonationsByDonor(donorID string) ([]schema.Donation, error) {
	donations := []schema.Donation{}
	if err := s.ormDB.Where("donor_id = ?", donorID).Order("created_at desc").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListDonationsByRequest returns the completed donations to a request, newest first
func (s *ReliefStore) ListDonationsByRequest(requestID string) ([]schema.Donation, error) {
	donations := []schema.Donation{}
	if err := s.ormDB.Where("request_id = ? AND status = ?", requestID, schema.DONATION_COMPLETED).
		Order("created_at desc").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// DonationTotal sums the completed donations made by a user
func (s *ReliefStore) DonationTotal(donorID string) (schema.DonationTotal, error) {
	var total schema.DonationTotal
	if err := s.ormDB.Model(schema.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Where("donor_id = ? AND status = ?", donorID, schema.DONATION_COMPLETED).
		Scan(&total).Error; err != nil {
		return schema.DonationTotal{}, err
	}
	return total, nil
}
