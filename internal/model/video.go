package model

// Video 视频，OwnerID创建后不可修改；Views是唯一存储下来的计数器，其余计数都在查询时算
type Video struct {
	BaseModel
	OwnerID     uint64   `gorm:"not null;index"`
	VideoFile   MediaRef `gorm:"embedded;embeddedPrefix:video_file_"`
	Thumbnail   MediaRef `gorm:"embedded;embeddedPrefix:thumbnail_"`
	Title       string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text"`
	Duration    float64  `gorm:"not null"`
	Views       uint64   `gorm:"not null"`
	// bool不要加default标签，否则false会被gorm当作零值跳过，落库变成默认值
	IsPublished bool `gorm:"not null;index"`
}

func (v *Video) GetOwnerID() uint64 {
	return v.OwnerID
}
