package store

import "time"

// ReportRecord is a row of the eventos table.
type ReportRecord struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string    `gorm:"column:nome;type:varchar(255);not null"`
	OccurredAt time.Time `gorm:"column:data;not null"`
	Latitude   float64   `gorm:"column:latitude;type:decimal(10,8);not null"`
	Longitude  float64   `gorm:"column:longitude;type:decimal(11,8);not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (ReportRecord) TableName() string { return "eventos" }

// EventTypeRecord is a row of the tipo_evento vocabulary table. Descriptions
// carry no uniqueness constraint.
type EventTypeRecord struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Description string    `gorm:"column:descricao;type:varchar(100);not null"`
	Active      bool      `gorm:"column:ativo;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (EventTypeRecord) TableName() string { return "tipo_evento" }

// ReportTypeLink pairs one report with one event type. A pair appears at most
// once; links go away with their report.
type ReportTypeLink struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ReportID    int64           `gorm:"column:evento_id;not null;uniqueIndex:idx_eventos_tipos_par"`
	EventTypeID int64           `gorm:"column:tipo_evento_id;not null;uniqueIndex:idx_eventos_tipos_par"`
	Report      ReportRecord    `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	EventType   EventTypeRecord `gorm:"foreignKey:EventTypeID"`
}

func (ReportTypeLink) TableName() string { return "eventos_tipos" }
