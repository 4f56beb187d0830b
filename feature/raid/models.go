package raid

import (
	"time"

	"gorm.io/gorm"
)

// Record is the persisted state of one raid.
type Record struct {
	RaidID     string `gorm:"column:raid_id;primaryKey;type:varchar(64)" json:"raidId"`
	Scope      string `gorm:"column:scope;type:varchar(64);index" json:"scope"`
	RaidTitle  string `gorm:"column:raid_title;type:varchar(256)" json:"raidTitle"`
	Difficulty string `gorm:"column:difficulty;type:varchar(64)" json:"difficulty"`
	StartAt    int64  `gorm:"column:start_at;type:bigint" json:"startAt"`
	EndAt      int64  `gorm:"column:end_at;type:bigint" json:"endAt"`
	Notes      string `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Caps       *Caps  `gorm:"column:caps;type:text;serializer:json" json:"caps,omitempty"`
	ChannelID  string `gorm:"column:channel_id;type:varchar(32)" json:"channelId"`

	// The ids may point at artifacts deleted outside this service.
	AnnouncementID   *string `gorm:"column:announcement_id;type:varchar(32)" json:"announcementId,omitempty"`
	ScheduledEntryID *string `gorm:"column:scheduled_entry_id;type:varchar(32)" json:"scheduledEntryId,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Record) TableName() string {
	return "raids"
}

// Meta returns the display fields used by the renderer.
func (r *Record) Meta() Meta {
	return Meta{
		RaidID:     r.RaidID,
		RaidTitle:  r.RaidTitle,
		Difficulty: r.Difficulty,
		StartAt:    r.StartAt,
		EndAt:      r.EndAt,
		Notes:      r.Notes,
	}
}

// SignupEntry is one user's signup for one raid.
type SignupEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RaidID    string    `gorm:"column:raid_id;type:varchar(64);uniqueIndex:idx_signup_raid_user" json:"raidId"`
	UserID    string    `gorm:"column:user_id;type:varchar(32);uniqueIndex:idx_signup_raid_user" json:"userId"`
	Role      Role      `gorm:"column:role;type:varchar(16)" json:"role"`
	Username  string    `gorm:"column:username;type:varchar(100)" json:"username"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (SignupEntry) TableName() string {
	return "raid_signups"
}

// PlayerProfile is a user's class and spec within a scope.
type PlayerProfile struct {
	Scope     string    `gorm:"column:scope;primaryKey;type:varchar(64)" json:"scope"`
	UserID    string    `gorm:"column:user_id;primaryKey;type:varchar(32)" json:"userId"`
	ClassKey  string    `gorm:"column:class_key;type:varchar(32)" json:"classKey"`
	SpecKey   string    `gorm:"column:spec_key;type:varchar(32)" json:"specKey"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (PlayerProfile) TableName() string {
	return "player_profiles"
}

// Models lists every persisted model, for migration and schema checks.
func Models() []any {
	return []any{&Record{}, &SignupEntry{}, &PlayerProfile{}}
}

// Migrate creates or updates the raid tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
