package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ── PostgreSQL INT[] ──

// IntArray 对应 PostgreSQL INT[]，编解码交给 lib/pq
type IntArray []int

// Scan 实现 sql.Scanner
func (a *IntArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var raw pq.Int64Array
	if err := raw.Scan(src); err != nil {
		return fmt.Errorf("IntArray.Scan: %w", err)
	}
	out := make(IntArray, len(raw))
	for i, n := range raw {
		out[i] = int(n)
	}
	*a = out
	return nil
}

// Value 实现 driver.Valuer
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	raw := make(pq.Int64Array, len(a))
	for i, n := range a {
		raw[i] = int64(n)
	}
	return raw.Value()
}

// BaseModel 通用审计字段
// 操作人来自外部账号体系，因此不约束为 uuid
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:varchar(64)"                   json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:varchar(64)"                   json:"updated_by,omitempty"`
}

// VersionedModel 软删除 + 乐观锁
type VersionedModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"           json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:varchar(64)" json:"deleted_by,omitempty"`
	Version   int            `gorm:"not null;default:1" json:"version"`
}
