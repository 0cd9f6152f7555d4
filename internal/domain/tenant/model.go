package tenant

import (
	"time"
)

// DefaultShard is the only shard in use
const DefaultShard = 1

// Tenant is the isolation boundary every other record hangs off.
type Tenant struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Shard     int       `db:"shard" json:"shard"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
