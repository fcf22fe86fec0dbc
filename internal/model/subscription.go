package model

import "time"

// Subscription 频道订阅关系
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriber_id;comment:订阅者ID" json:"subscriberId"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_channel_id;comment:频道（用户）ID" json:"channelId"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
