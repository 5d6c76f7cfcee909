package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Product struct {
	Id           uuid.UUID
	SellerId     uuid.UUID
	Name         string
	Description  string
	Price        float64
	Stock        int
	IsReturnable bool
	Status       ProductStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
