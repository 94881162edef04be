package store

import (
	"context"
	"testing"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvision_CreatesTablesAndSeeds(t *testing.T) {
	s, _ := newTestStore(t)

	m := s.db.Migrator()
	assert.True(t, m.HasTable("eventos"))
	assert.True(t, m.HasTable("tipo_evento"))
	assert.True(t, m.HasTable("eventos_tipos"))
	assert.True(t, m.HasIndex(&ReportTypeLink{}, "idx_eventos_tipos_par"))

	var rows []EventTypeRecord
	require.NoError(t, s.db.Order("id").Find(&rows).Error)
	require.Len(t, rows, len(domain.DefaultEventTypes))
	for i, row := range rows {
		assert.Equal(t, domain.DefaultEventTypes[i], row.Description)
		assert.True(t, row.Active)
		assert.True(t, baseTime.Equal(row.CreatedAt))
	}
}

func TestProvision_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.CreateReport(context.Background(), newReport("Antes", "Raios"))
	require.NoError(t, err)

	require.NoError(t, s.Provision(context.Background()))
	require.NoError(t, s.Provision(context.Background()))

	assert.Equal(t, int64(12), countRows(t, s, &EventTypeRecord{}))
	assert.Equal(t, int64(1), countRows(t, s, &ReportRecord{}))
	assert.Equal(t, int64(1), countRows(t, s, &ReportTypeLink{}))
}

func TestProvision_SkipsSeedWhenVocabularyNotEmpty(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrator().CreateTable(&EventTypeRecord{}))
	require.NoError(t, db.Create(&EventTypeRecord{Description: "Garoa", Active: true}).Error)

	s := New(db, clockwork.NewFakeClockAt(baseTime), discardLogger(), nil)
	require.NoError(t, s.Provision(context.Background()))

	var descs []string
	require.NoError(t, db.Model(&EventTypeRecord{}).Pluck("descricao", &descs).Error)
	assert.Equal(t, []string{"Garoa"}, descs)
	assert.True(t, db.Migrator().HasTable("eventos"))
	assert.True(t, db.Migrator().HasTable("eventos_tipos"))
}

func TestProvision_ReseedsEmptiedVocabulary(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.db.Where("1 = 1").Delete(&EventTypeRecord{}).Error)
	require.Zero(t, countRows(t, s, &EventTypeRecord{}))

	require.NoError(t, s.Provision(context.Background()))

	assert.Equal(t, int64(len(domain.DefaultEventTypes)), countRows(t, s, &EventTypeRecord{}))
}

func TestProvision_ContextCancelled(t *testing.T) {
	s := New(openTestDB(t), nil, discardLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Provision(ctx))
}
