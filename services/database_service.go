package services

import (
	"context"

	"pay24/entity"
)

// Database is the order store the payments service reconciles gateway
// notifications against. Persistence of orders and settings belongs
// here, not in the protocol layer; a nil Database is allowed when the
// protocol layer is used as a library.
type Database interface {
	WriteLogMessage(data Data) error

	GetOrder(ctx context.Context, id int) (*entity.Order, error)
	UpdateOrder(ctx context.Context, order *entity.Order) error

	SaveAvailableGateways(ctx context.Context, ids []string) error
	GetAvailableGateways(ctx context.Context) ([]string, error)

	SaveNotification(ctx context.Context, record *entity.NotificationRecord) error
}

// Data is a record persistable to the audit log.
type Data interface {
	DataType() string
}
