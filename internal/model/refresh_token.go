package model

import "time"

// RefreshToken records an issued refresh token by its jti so tokens can be
// rotated on use and revoked before their JWT expiry.
type RefreshToken struct {
	ID        string `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
