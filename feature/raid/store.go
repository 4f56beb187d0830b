package raid

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a GORM database.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a GORM backed store.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertRaid(ctx context.Context, rec *Record) (*Record, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "raid_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"scope", "raid_title", "difficulty", "start_at", "end_at",
			"notes", "caps", "channel_id", "updated_at",
		}),
	}).Omit("announcement_id", "scheduled_entry_id").Create(rec).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert raid %s: %w", rec.RaidID, err)
	}
	return s.GetRaid(ctx, rec.RaidID)
}

func (s *GormStore) GetRaid(ctx context.Context, raidID string) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("raid_id = ?", raidID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("raid %s: %w", raidID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load raid %s: %w", raidID, err)
	}
	return &rec, nil
}

func (s *GormStore) UpdateArtifacts(ctx context.Context, raidID, announcementID, scheduledEntryID string) error {
	err := s.db.WithContext(ctx).Model(&Record{}).Where("raid_id = ?", raidID).Updates(map[string]any{
		"announcement_id":    nullable(announcementID),
		"scheduled_entry_id": nullable(scheduledEntryID),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update artifacts of raid %s: %w", raidID, err)
	}
	return nil
}

func (s *GormStore) ListSignups(ctx context.Context, raidID string) ([]SignupEntry, error) {
	var entries []SignupEntry
	err := s.db.WithContext(ctx).Where("raid_id = ?", raidID).Order("created_at ASC, id ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list signups of raid %s: %w", raidID, err)
	}
	return entries, nil
}

func (s *GormStore) GetSignup(ctx context.Context, raidID, userID string) (*SignupEntry, error) {
	var entry SignupEntry
	err := s.db.WithContext(ctx).Where("raid_id = ? AND user_id = ?", raidID, userID).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("signup %s/%s: %w", raidID, userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load signup %s/%s: %w", raidID, userID, err)
	}
	return &entry, nil
}

// UpsertSignup writes the role and username; created_at of an existing
// signup is kept so ordering stays stable.
func (s *GormStore) UpsertSignup(ctx context.Context, entry *SignupEntry) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "raid_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "username", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert signup %s/%s: %w", entry.RaidID, entry.UserID, err)
	}
	return nil
}

func (s *GormStore) GetProfile(ctx context.Context, scope, userID string) (*PlayerProfile, error) {
	var profile PlayerProfile
	err := s.db.WithContext(ctx).Where("scope = ? AND user_id = ?", scope, userID).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile %s/%s: %w", scope, userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s/%s: %w", scope, userID, err)
	}
	return &profile, nil
}

func (s *GormStore) ListProfiles(ctx context.Context, scope string, userIDs []string) ([]PlayerProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []PlayerProfile
	err := s.db.WithContext(ctx).Where("scope = ? AND user_id IN ?", scope, userIDs).Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles in %s: %w", scope, err)
	}
	return profiles, nil
}

func (s *GormStore) UpsertProfile(ctx context.Context, profile *PlayerProfile) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"class_key", "spec_key", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s/%s: %w", profile.Scope, profile.UserID, err)
	}
	return nil
}

func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}
