package models

// Profession is read-mostly reference data, maintained out-of-band and
// seeded on first boot. Producers reference it through user_professions.
type Profession struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code   string `gorm:"size:50;not null;uniqueIndex" json:"code"`
	NameEn string `gorm:"size:100;not null" json:"name_en"`
	NameFr string `gorm:"size:100;not null" json:"name_fr"`
}
