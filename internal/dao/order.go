package dao

import (
	"context"

	"tradegate/internal/model"

	"gorm.io/gorm"
)

type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{db: db}
}

// 插入下单记录
func (d *OrderDao) OrderCreateNew(ctx context.Context, record *model.OrderRecord) error {
	return d.db.WithContext(ctx).Create(record).Error
}

// 查找同符号同方向的最后一个订单
func (d *OrderDao) OrderGetLast(ctx context.Context, symbol string, side string) (or model.OrderRecord, err error) {
	err = d.db.WithContext(ctx).Model(&model.OrderRecord{}).
		Where("symbol = ?", symbol).
		Where("side = ?", side).
		Order("created_at DESC").
		Limit(1).
		Find(&or).Error
	return
}
