package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"property-api/models"
)

var propertyColumns = []string{"id", "address", "price", "bedrooms", "bathrooms", "type"}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PropertyService) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return sqlDB, mock, NewPropertyService(db, zap.NewNop())
}

func sampleInput() models.PropertyInput {
	return models.PropertyInput{
		Address:   "74 Harbour View",
		Price:     250000.5,
		Bedrooms:  3,
		Bathrooms: 2,
		Type:      strPtr("Condo"),
	}
}

func TestQueryByID_Success(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(propertyColumns).AddRow(5, "74 Harbour View", 250000.5, 3, 2, "Condo")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "properties" WHERE "properties"."id" = $1 ORDER BY "properties"."id" LIMIT $2`)).
		WithArgs(5, 1).
		WillReturnRows(rows)

	property, err := svc.QueryByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, uint(5), property.ID)
	assert.Equal(t, "74 Harbour View", property.Address)
	assert.Equal(t, 250000.5, property.Price)
	assert.Equal(t, 3, property.Bedrooms)
	assert.Equal(t, 2, property.Bathrooms)
	require.NotNil(t, property.Type)
	assert.Equal(t, "Condo", *property.Type)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID_NullType(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(propertyColumns).AddRow(9, "3 Mill Lane", 99000, 1, 1, nil)
	mock.ExpectQuery(`SELECT`).WithArgs(9, 1).WillReturnRows(rows)

	property, err := svc.QueryByID(context.Background(), 9)

	require.NoError(t, err)
	assert.Nil(t, property.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID_NotFound(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs(2000, 1).
		WillReturnRows(sqlmock.NewRows(propertyColumns))

	property, err := svc.QueryByID(context.Background(), 2000)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, property)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID_StoreFailure(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	_, err := svc.QueryByID(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestQueryMany_FilteredPage(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "properties" WHERE "type" = $1`)).
		WithArgs("Condo").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "properties" WHERE "type" = $1 ORDER BY "id" LIMIT $2 OFFSET $3`)).
		WithArgs("Condo", 2, 10).
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow(31, "8 Quay St", 180000, 2, 1, "Condo").
			AddRow(35, "14 Quay St", 210000, 2, 2, "Condo"))

	properties, count, err := svc.QueryMany(context.Background(), models.FilterQuery{
		Type:   strPtr("Condo"),
		Limit:  intPtr(2),
		Offset: intPtr(10),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(14), count)
	require.Len(t, properties, 2)
	assert.Equal(t, uint(31), properties[0].ID)
	assert.Equal(t, uint(35), properties[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryMany_NoMatchesSkipsSelect(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "properties" WHERE "bedrooms" >= $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	properties, count, err := svc.QueryMany(context.Background(), models.FilterQuery{BedroomsMin: intPtr(10)})

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NotNil(t, properties)
	assert.Empty(t, properties)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryMany_CountFailure(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT count`).WillReturnError(errors.New("timeout"))

	_, _, err := svc.QueryMany(context.Background(), models.FilterQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count properties")
}

func TestCreate_ReturnsAssignedID(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "properties" ("address","price","bedrooms","bathrooms","type") VALUES ($1,$2,$3,$4,$5) RETURNING "id"`)).
		WithArgs("74 Harbour View", 250000.5, 3, 2, "Condo").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(127))

	property, err := svc.Create(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.Equal(t, uint(127), property.ID)
	assert.Equal(t, "74 Harbour View", property.Address)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_WithoutType(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	in := sampleInput()
	in.Type = nil

	mock.ExpectQuery(`INSERT INTO "properties"`).
		WithArgs("74 Harbour View", 250000.5, 3, 2, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(128))

	property, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Nil(t, property.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_OverwritesAllColumns(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "properties" SET "address"=$1,"bathrooms"=$2,"bedrooms"=$3,"price"=$4,"type"=$5 WHERE "id" = $6`)).
		WithArgs("74 Harbour View", 2, 3, 250000.5, "Condo", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	property, err := svc.Update(context.Background(), 7, sampleInput())

	require.NoError(t, err)
	assert.Equal(t, uint(7), property.ID)
	assert.Equal(t, 250000.5, property.Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ClearsTypeWhenAbsent(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	in := sampleInput()
	in.Type = nil

	mock.ExpectExec(`UPDATE "properties" SET`).
		WithArgs("74 Harbour View", 2, 3, 250000.5, nil, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	property, err := svc.Update(context.Background(), 7, in)

	require.NoError(t, err)
	assert.Nil(t, property.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFoundNeverInserts(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	property, err := svc.Update(context.Background(), 2000, sampleInput())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, property)
	// kein INSERT erwartet: sqlmock meldet unerwartete Statements als Fehler
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{"existing row", 1},
		{"missing row", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, svc := setupMockDB(t)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "properties" WHERE "properties"."id" = $1`)).
				WithArgs(42).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			affected, err := svc.Delete(context.Background(), 42)

			require.NoError(t, err)
			assert.Equal(t, tt.affected, affected)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDelete_StoreFailure(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).WillReturnError(errors.New("disk full"))

	_, err := svc.Delete(context.Background(), 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete property 42")
}

func TestCount(t *testing.T) {
	db, mock, svc := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(126))

	count, err := svc.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(126), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
